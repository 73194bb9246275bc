package update_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
	"github.com/m04kA/SpaceBookingService/pkg/ptr"
	"github.com/m04kA/SpaceBookingService/pkg/types"
)

var (
	now      = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	owner = domain.Actor{UserID: 7, Role: domain.RoleRequester}
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdministrator}
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeSpaces struct{ spaces map[int64]*domain.Space }

func (f *fakeSpaces) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	s, ok := f.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return s, nil
}

type fakeReservations struct {
	byID    map[int64]*domain.Reservation
	updated []*domain.Reservation
}

func (f *fakeReservations) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservations) GetActiveBySpaceAndDate(_ context.Context, spaceID int64, date time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.byID {
		if r.SpaceID == spaceID && domain.SameDate(r.Date, date) && r.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservations) Update(_ context.Context, r *domain.Reservation) error {
	f.updated = append(f.updated, r)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct{ results []string }

func (f *fakeMetrics) ObserveAdmission(result string) { f.results = append(f.results, result) }

func reservation(id, spaceID int64, start, end string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		SpaceID:     spaceID,
		RequesterID: owner.UserID,
		Date:        tomorrow,
		Range:       domain.MustTimeRange(start, end),
		PartySize:   4,
		Purpose:     "Weekly sync",
		Status:      status,
	}
}

func newUseCase(reservations ...*domain.Reservation) (*UseCase, *fakeReservations, *fakeMetrics) {
	repo := &fakeReservations{byID: map[int64]*domain.Reservation{}}
	for _, r := range reservations {
		repo.byID[r.ID] = r
	}
	spaces := &fakeSpaces{spaces: map[int64]*domain.Space{
		1: {ID: 1, Capacity: 10, OperatingHours: domain.MustTimeRange("08:00", "20:00"), Status: domain.SpaceStatusAvailable},
		2: {ID: 2, Capacity: 4, OperatingHours: domain.MustTimeRange("08:00", "20:00"), Status: domain.SpaceStatusAvailable},
	}}
	m := &fakeMetrics{}
	uc := NewUseCase(repo, spaces, passthroughTx{}, m, Settings{}, logger.Nop())
	uc.timeProvider = fixedTime{t: now}
	return uc, repo, m
}

func TestExecute_ShiftOverlappingItselfIsAdmitted(t *testing.T) {
	uc, repo, m := newUseCase(reservation(5, 1, "09:30", "10:30", domain.StatusConfirmed))

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:         owner,
		ReservationID: 5,
		StartTime:     ptr.Ptr(types.MustTimeString("09:00")),
		EndTime:       ptr.Ptr(types.MustTimeString("10:00")),
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00-10:00", resp.Reservation.Range.String())
	require.Len(t, repo.updated, 1)
	assert.Equal(t, domain.StatusConfirmed, repo.updated[0].Status, "editing keeps the status")
	assert.Equal(t, []string{domain.OutcomeAdmitted}, m.results)
}

func TestExecute_ConflictWithAnotherReservation(t *testing.T) {
	other := reservation(6, 1, "10:00", "11:00", domain.StatusPending)
	other.RequesterID = 99
	uc, repo, m := newUseCase(reservation(5, 1, "08:00", "09:00", domain.StatusPending), other)

	_, err := uc.Execute(context.Background(), &Request{
		Actor:         owner,
		ReservationID: 5,
		EndTime:       ptr.Ptr(types.MustTimeString("10:30")),
	})

	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Empty(t, repo.updated)
	assert.Equal(t, []string{domain.OutcomeSlotConflict}, m.results)
}

func TestExecute_MoveToSmallerSpace(t *testing.T) {
	uc, _, _ := newUseCase(reservation(5, 1, "09:00", "10:00", domain.StatusPending))

	_, err := uc.Execute(context.Background(), &Request{
		Actor:         admin,
		ReservationID: 5,
		SpaceID:       ptr.Ptr(int64(2)),
		PartySize:     ptr.Ptr(5),
	})

	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestExecute_Authorization(t *testing.T) {
	stranger := domain.Actor{UserID: 50, Role: domain.RoleRequester}

	tests := []struct {
		name    string
		status  domain.ReservationStatus
		actor   domain.Actor
		wantErr error
	}{
		{name: "stranger", status: domain.StatusPending, actor: stranger, wantErr: domain.ErrUnauthorized},
		{name: "in progress", status: domain.StatusInProgress, actor: owner, wantErr: domain.ErrNotModifiable},
		{name: "completed by admin", status: domain.StatusCompleted, actor: admin, wantErr: domain.ErrNotModifiable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, m := newUseCase(reservation(5, 1, "09:00", "10:00", tt.status))

			_, err := uc.Execute(context.Background(), &Request{
				Actor:         tt.actor,
				ReservationID: 5,
				PartySize:     ptr.Ptr(2),
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.updated)
			assert.Empty(t, m.results, "guard is not reached")
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _ := newUseCase(reservation(5, 1, "09:00", "10:00", domain.StatusPending))

	_, err := uc.Execute(context.Background(), &Request{Actor: owner, ReservationID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Actor:         owner,
		ReservationID: 5,
		StartTime:     ptr.Ptr(types.MustTimeString("10:00")),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = uc.Execute(context.Background(), &Request{
		Actor:         owner,
		ReservationID: 5,
		Purpose:       ptr.Ptr("no"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPurpose)

	_, err = uc.Execute(context.Background(), &Request{
		Actor:         owner,
		ReservationID: 5,
		Date:          ptr.Ptr(now.AddDate(0, 0, -2)),
	})
	assert.ErrorIs(t, err, domain.ErrPastSchedule)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{Actor: owner, ReservationID: 5, PartySize: ptr.Ptr(2)})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	uc, _, _ = newUseCase(reservation(5, 1, "09:00", "10:00", domain.StatusPending))
	_, err = uc.Execute(context.Background(), &Request{Actor: owner, ReservationID: 5, SpaceID: ptr.Ptr(int64(9))})
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestExecute_StartedReservationCannotBeMovedOrExtended(t *testing.T) {
	started := func() *domain.Reservation {
		r := reservation(5, 1, "11:00", "13:00", domain.StatusPending)
		r.Date = domain.NormalizeDate(now)
		return r
	}

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "other space", req: &Request{Actor: owner, ReservationID: 5, SpaceID: ptr.Ptr(int64(2))}},
		{name: "later end", req: &Request{Actor: owner, ReservationID: 5, EndTime: ptr.Ptr(types.MustTimeString("14:00"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, _ := newUseCase(started())

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrPastSchedule)
			assert.Empty(t, repo.updated)
		})
	}

	t.Run("party size only", func(t *testing.T) {
		uc, repo, _ := newUseCase(started())

		_, err := uc.Execute(context.Background(), &Request{Actor: owner, ReservationID: 5, PartySize: ptr.Ptr(3)})
		require.NoError(t, err)
		assert.Len(t, repo.updated, 1)
	})
}
