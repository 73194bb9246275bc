package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
	"github.com/m04kA/SpaceBookingService/pkg/txmanager"
	"github.com/m04kA/SpaceBookingService/pkg/types"
)

var (
	now      = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeSpaces struct {
	spaces map[int64]*domain.Space
	err    error
}

func (f *fakeSpaces) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	cp := *s
	return &cp, nil
}

type fakeReservations struct {
	stored     []*domain.Reservation
	createErrs []error
	reads      int
}

func (f *fakeReservations) GetActiveBySpaceAndDate(_ context.Context, spaceID int64, date time.Time) ([]*domain.Reservation, error) {
	f.reads++
	var out []*domain.Reservation
	for _, r := range f.stored {
		if r.SpaceID == spaceID && domain.SameDate(r.Date, date) && r.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservations) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	r.ID = int64(len(f.stored) + 100)
	f.stored = append(f.stored, r)
	return r, nil
}

// fakeTx повторяет fn на конфликте сериализации, как настоящий менеджер
type fakeTx struct {
	attempts    int
	beforeRetry func()
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < 3; i++ {
		f.attempts++
		err = fn(ctx)
		if err == nil || !txmanager.IsRetryable(err) {
			return err
		}
		if f.beforeRetry != nil {
			f.beforeRetry()
		}
	}
	return err
}

type fakeMetrics struct{ results []string }

func (f *fakeMetrics) ObserveAdmission(result string) { f.results = append(f.results, result) }

type fixture struct {
	uc           *UseCase
	reservations *fakeReservations
	spaces       *fakeSpaces
	tx           *fakeTx
	metrics      *fakeMetrics
}

func newFixture() *fixture {
	f := &fixture{
		reservations: &fakeReservations{},
		spaces: &fakeSpaces{spaces: map[int64]*domain.Space{
			1: {
				ID:             1,
				Name:           "Sala A",
				Capacity:       10,
				OperatingHours: domain.MustTimeRange("08:00", "20:00"),
				Status:         domain.SpaceStatusAvailable,
			},
		}},
		tx:      &fakeTx{},
		metrics: &fakeMetrics{},
	}
	f.uc = NewUseCase(f.reservations, f.spaces, f.tx, f.metrics, Settings{AdvanceBookingDays: 30}, logger.Nop())
	f.uc.timeProvider = fixedTime{t: now}
	return f
}

func (f *fixture) seed(start, end string, status domain.ReservationStatus) {
	f.reservations.stored = append(f.reservations.stored, &domain.Reservation{
		ID:          int64(len(f.reservations.stored) + 1),
		SpaceID:     1,
		RequesterID: 99,
		Date:        tomorrow,
		Range:       domain.MustTimeRange(start, end),
		PartySize:   3,
		Status:      status,
	})
}

func request(start, end string) *Request {
	return &Request{
		RequesterID: 7,
		SpaceID:     1,
		Date:        tomorrow,
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
		PartySize:   4,
		Purpose:     "  Sprint planning  ",
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	f.seed("08:00", "09:00", domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), request("09:00", "10:30"))
	require.NoError(t, err)

	r := resp.Reservation
	assert.Equal(t, domain.StatusPending, r.Status)
	assert.Equal(t, int64(7), r.RequesterID)
	assert.Equal(t, "09:00-10:30", r.Range.String())
	assert.Equal(t, "Sprint planning", r.Purpose)
	assert.Equal(t, "Sala A", resp.Space.Name)
	assert.Equal(t, []string{domain.OutcomeAdmitted}, f.metrics.results)
}

func TestExecute_GuardRejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture)
		req     *Request
		wantErr error
		outcome string
	}{
		{
			name:    "overlap",
			prepare: func(f *fixture) { f.seed("09:30", "10:30", domain.StatusPending) },
			req:     request("09:00", "10:00"),
			wantErr: domain.ErrSlotConflict,
			outcome: domain.OutcomeSlotConflict,
		},
		{
			name: "capacity",
			req: func() *Request {
				r := request("09:00", "10:00")
				r.PartySize = 11
				return r
			}(),
			wantErr: domain.ErrCapacityExceeded,
			outcome: domain.OutcomeCapacityExceeded,
		},
		{
			name:    "space under maintenance",
			prepare: func(f *fixture) { f.spaces.spaces[1].Status = domain.SpaceStatusMaintenance },
			req:     request("09:00", "10:00"),
			wantErr: domain.ErrSpaceUnavailable,
			outcome: domain.OutcomeSpaceUnavailable,
		},
		{
			name:    "inverted range",
			req:     request("11:00", "10:00"),
			wantErr: domain.ErrInvalidRange,
			outcome: domain.OutcomeInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.prepare != nil {
				tt.prepare(f)
			}
			before := len(f.reservations.stored)

			_, err := f.uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, f.reservations.stored, before, "nothing is written on rejection")
			assert.Equal(t, []string{tt.outcome}, f.metrics.results)
		})
	}
}

func TestExecute_BackToBackAndInactiveDoNotBlock(t *testing.T) {
	f := newFixture()
	f.seed("08:00", "09:00", domain.StatusConfirmed)
	f.seed("10:00", "11:00", domain.StatusInProgress)
	f.seed("09:00", "10:00", domain.StatusCancelled)

	_, err := f.uc.Execute(context.Background(), request("09:00", "10:00"))
	assert.NoError(t, err)
}

func TestExecute_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "missing space", mutate: func(r *Request) { r.SpaceID = 0 }, wantErr: ErrInvalidInput},
		{name: "missing date", mutate: func(r *Request) { r.Date = time.Time{} }, wantErr: ErrInvalidInput},
		{name: "missing end", mutate: func(r *Request) { r.EndTime = types.TimeString{} }, wantErr: ErrInvalidInput},
		{name: "short purpose", mutate: func(r *Request) { r.Purpose = "abc" }, wantErr: domain.ErrInvalidPurpose},
		{name: "yesterday", mutate: func(r *Request) { r.Date = now.AddDate(0, 0, -1) }, wantErr: domain.ErrPastSchedule},
		{name: "too far ahead", mutate: func(r *Request) { r.Date = now.AddDate(0, 2, 0) }, wantErr: domain.ErrBeyondHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request("09:00", "10:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.tx.attempts, "no transaction for invalid input")
		})
	}
}

func TestExecute_SpaceNotFound(t *testing.T) {
	f := newFixture()
	req := request("09:00", "10:00")
	req.SpaceID = 404

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestExecute_StorageConstraintIsSlotConflict(t *testing.T) {
	f := newFixture()
	f.reservations.createErrs = []error{reservationRepo.ErrSlotConflict}

	_, err := f.uc.Execute(context.Background(), request("09:00", "10:00"))

	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Equal(t, []string{domain.OutcomeSlotConflict}, f.metrics.results)
}

func TestExecute_SerializationFailureRerunsGuard(t *testing.T) {
	f := newFixture()
	serialization := &pq.Error{Code: "40001"}
	f.reservations.createErrs = []error{
		// так репозиторий оборачивает ошибку драйвера
		errors.Join(reservationRepo.ErrExecQuery, serialization),
	}
	// Конкурент успел записать пересекающееся бронирование
	f.tx.beforeRetry = func() { f.seed("09:30", "10:30", domain.StatusPending) }

	_, err := f.uc.Execute(context.Background(), request("09:00", "10:00"))

	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Equal(t, 2, f.tx.attempts)
	assert.Equal(t, 2, f.reservations.reads, "snapshot is re-read on retry")
}

func TestExecute_InfrastructureError(t *testing.T) {
	f := newFixture()
	f.spaces.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), request("09:00", "10:00"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{domain.OutcomeOther}, f.metrics.results)
}
