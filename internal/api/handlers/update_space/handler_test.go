package update_space

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces/models"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
)

type fakeService struct {
	id  int64
	got *models.UpdateSpaceRequest
	err error
}

func (f *fakeService) Update(_ context.Context, id int64, req *models.UpdateSpaceRequest) (*models.SpaceResponse, error) {
	f.id, f.got = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SpaceResponse{ID: id, Name: req.Name, Status: "maintenance"}, nil
}

const validBody = `{"name":"Green room","kind":"classroom","location":"Building B","capacity":30,"closeTime":"18:00"}`

func serve(h *Handler, id, body string, withActor bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/admin/spaces/"+id, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"spaceId": id})
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 1, Role: domain.RoleAdministrator}))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Updated(t *testing.T) {
	svc := &fakeService{}
	w := serve(NewHandler(svc, logger.Nop()), "4", validBody, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4), svc.id)
	assert.Equal(t, "Green room", svc.got.Name)
	assert.Equal(t, "classroom", svc.got.Kind)
	assert.Equal(t, 30, svc.got.Capacity)
	assert.Equal(t, "18:00", svc.got.CloseTime)
	assert.Contains(t, w.Body.String(), `"status":"maintenance"`)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.Nop())
	assert.Equal(t, http.StatusBadRequest, serve(h, "four", validBody, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "4", `{"status":"available"}`, true).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "4", validBody, false).Code)

	tests := map[error]int{
		spaces.ErrInvalidInput:  http.StatusBadRequest,
		spaces.ErrSpaceNotFound: http.StatusNotFound,
		spaces.ErrDuplicateName: http.StatusConflict,
		domain.ErrUnauthorized:  http.StatusForbidden,
		spaces.ErrInternal:      http.StatusInternalServerError,
	}
	for err, status := range tests {
		assert.Equal(t, status, serve(NewHandler(&fakeService{err: err}, logger.Nop()), "4", validBody, true).Code, err.Error())
	}
}
