package get_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
)

type fakeService struct {
	actor domain.Actor
	err   error
}

func (f *fakeService) GetByID(_ context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, Status: string(domain.StatusConfirmed)}, nil
}

func serve(h *Handler, id string, withActor bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"reservationId": id})
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 7, Role: domain.RoleRequester}))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(NewHandler(svc, logger.Nop()), "12", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), svc.actor.UserID)

	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.ID)

	assert.Equal(t, http.StatusBadRequest, serve(NewHandler(&fakeService{}, logger.Nop()), "x", true).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(NewHandler(&fakeService{}, logger.Nop()), "12", false).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := map[error]int{
		reservations.ErrReservationNotFound: http.StatusNotFound,
		domain.ErrUnauthorized:              http.StatusForbidden,
		reservations.ErrInternal:            http.StatusInternalServerError,
	}
	for err, status := range tests {
		assert.Equal(t, status, serve(NewHandler(&fakeService{err: err}, logger.Nop()), "12", true).Code, err.Error())
	}
}
