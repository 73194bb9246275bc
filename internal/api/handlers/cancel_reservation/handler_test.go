package cancel_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) Cancel(_ context.Context, id int64, _ domain.Actor) (*models.ReservationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, Status: string(domain.StatusCancelled)}, nil
}

func serve(h *Handler, id string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/cancel", nil)
	r = mux.SetURLVars(r, map[string]string{"reservationId": id})
	r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 7, Role: domain.RoleRequester}))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(NewHandler(&fakeService{}, logger.Nop()), "5").Code)
	assert.Equal(t, http.StatusBadRequest, serve(NewHandler(&fakeService{}, logger.Nop()), "five").Code)

	tests := map[error]int{
		reservations.ErrReservationNotFound: http.StatusNotFound,
		domain.ErrUnauthorized:              http.StatusForbidden,
		domain.ErrInvalidTransition:         http.StatusConflict,
		reservations.ErrStatusChanged:       http.StatusConflict,
		reservations.ErrInternal:            http.StatusInternalServerError,
	}
	for err, status := range tests {
		assert.Equal(t, status, serve(NewHandler(&fakeService{err: err}, logger.Nop()), "5").Code, err.Error())
	}
}
