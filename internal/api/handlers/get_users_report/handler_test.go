package get_users_report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
)

type fakeService struct {
	got *models.RequesterReportRequest
	err error
}

func (f *fakeService) RequesterReport(_ context.Context, req *models.RequesterReportRequest) (*models.RequesterReportResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RequesterReportResponse{
		Requesters: []models.RequesterUsageResponse{
			{RequesterID: 7, Reservations: 3, BookedMinutes: 180, FirstDate: "2025-10-01", LastDate: "2025-10-12"},
		},
	}, nil
}

func serve(h *Handler, rawQuery string, withActor bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports/users?"+rawQuery, nil)
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 1, Role: domain.RoleAdministrator}))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(NewHandler(svc, logger.Nop()), "to=2025-10-31", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.got.From)
	require.NotNil(t, svc.got.To)
	assert.Equal(t, "2025-10-31", svc.got.To.Format(domain.DateFormat))

	var resp models.RequesterReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Requesters, 1)
	assert.Equal(t, 180, resp.Requesters[0].BookedMinutes)
	assert.Equal(t, "2025-10-12", resp.Requesters[0].LastDate)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.Nop())
	assert.Equal(t, http.StatusBadRequest, serve(h, "from=10/01/2025", true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "to=soon", true).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "", false).Code)

	tests := map[error]int{
		reservations.ErrInvalidInput: http.StatusBadRequest,
		domain.ErrUnauthorized:       http.StatusForbidden,
		reservations.ErrInternal:     http.StatusInternalServerError,
	}
	for err, status := range tests {
		assert.Equal(t, status, serve(NewHandler(&fakeService{err: err}, logger.Nop()), "", true).Code, err.Error())
	}
}
