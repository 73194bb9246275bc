package list_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
)

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdministrator}

type fakeService struct {
	got *models.ListAllRequest
	err error
}

func (f *fakeService) ListAll(_ context.Context, req *models.ListAllRequest) (*models.ReservationListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{}, Page: 1, Limit: 10}, nil
}

func serve(h *Handler, rawQuery string, withActor bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations?"+rawQuery, nil)
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), admin))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestToServiceRequest(t *testing.T) {
	query := url.Values{}
	query.Set("status", "pending")
	query.Set("spaceId", "3")
	query.Set("date", "2025-10-15")
	query.Set("page", "2")
	query.Set("limit", "20")

	req, err := ToServiceRequest(admin, query)
	require.NoError(t, err)
	assert.Equal(t, "pending", *req.Status)
	assert.Equal(t, int64(3), *req.SpaceID)
	assert.Equal(t, "2025-10-15", req.Date.Format(domain.DateFormat))
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 20, req.Limit)

	req, err = ToServiceRequest(admin, url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.SpaceID)
	assert.Nil(t, req.Date)
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	require.Equal(t, http.StatusOK, serve(NewHandler(svc, logger.Nop()), "status=confirmed", true).Code)
	assert.Equal(t, "confirmed", *svc.got.Status)

	h := NewHandler(&fakeService{}, logger.Nop())
	for _, query := range []string{"page=0", "limit=abc", "spaceId=three", "date=15.10.2025"} {
		assert.Equal(t, http.StatusBadRequest, serve(h, query, true).Code, query)
	}
	assert.Equal(t, http.StatusUnauthorized, serve(h, "", false).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := map[error]int{
		domain.ErrUnauthorized:       http.StatusForbidden,
		reservations.ErrInvalidInput: http.StatusBadRequest,
		reservations.ErrInternal:     http.StatusInternalServerError,
	}
	for err, status := range tests {
		assert.Equal(t, status, serve(NewHandler(&fakeService{err: err}, logger.Nop()), "", true).Code, err.Error())
	}
}
