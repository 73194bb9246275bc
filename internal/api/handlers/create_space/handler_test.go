package create_space

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces"
	"github.com/m04kA/SpaceBookingService/internal/service/spaces/models"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
)

type fakeService struct {
	got *models.CreateSpaceRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateSpaceRequest) (*models.SpaceResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SpaceResponse{ID: 11, Name: req.Name, Kind: req.Kind, Status: "available"}, nil
}

const validBody = `{"name":"Blue room","kind":"meeting_room","location":"Building A","capacity":8,"openTime":"09:00","equipment":["projector"]}`

func serve(h *Handler, body string, withActor bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/spaces", strings.NewReader(body))
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 1, Role: domain.RoleAdministrator}))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	w := serve(NewHandler(svc, logger.Nop()), validBody, true)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), svc.got.Actor.UserID)
	assert.Equal(t, 8, svc.got.Capacity)
	assert.Equal(t, "09:00", svc.got.OpenTime)
	assert.Empty(t, svc.got.CloseTime)
	assert.Equal(t, []string{"projector"}, svc.got.Equipment)

	var resp models.SpaceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.ID)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.Nop())
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"name":`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"name":"x","floor":2}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, ``, true).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, validBody, false).Code)

	tests := map[error]int{
		spaces.ErrInvalidInput:  http.StatusBadRequest,
		spaces.ErrDuplicateName: http.StatusConflict,
		domain.ErrUnauthorized:  http.StatusForbidden,
		spaces.ErrInternal:      http.StatusInternalServerError,
	}
	for err, status := range tests {
		assert.Equal(t, status, serve(NewHandler(&fakeService{err: err}, logger.Nop()), validBody, true).Code, err.Error())
	}
}
