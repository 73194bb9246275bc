package domain

import "time"

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusInProgress ReservationStatus = "in_progress"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusRejected   ReservationStatus = "rejected"
)

// ActiveStatuses statuses that block availability and conflict with new bookings
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// AllStatuses every known status, in lifecycle order
var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}

// ParseReservationStatus validates a status string
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// IsActive returns true for pending, confirmed and in_progress
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

// IsTerminal returns true if no transition can leave the status
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// Reservation represents a request to occupy a space for a date and time range
type Reservation struct {
	ID          int64
	SpaceID     int64
	RequesterID int64
	Date        time.Time // calendar date, midnight UTC
	Range       TimeRange
	PartySize   int
	Purpose     string
	Status      ReservationStatus
	AdminNote   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation can block other bookings
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// CanBeModified returns true if date, time, space or party size may still change
func (r *Reservation) CanBeModified() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsOwnedBy returns true if userID created the reservation
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.RequesterID == userID
}

// StartsAt returns the absolute start instant in loc
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.Range.Start.On(dateIn(r.Date, loc))
}

// EndsAt returns the absolute end instant in loc
func (r *Reservation) EndsAt(loc *time.Location) time.Time {
	return r.Range.End.On(dateIn(r.Date, loc))
}

func dateIn(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// NormalizeDate drops the time-of-day component, keeping the calendar date at midnight UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b denote the same calendar date
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ReservationFilter filter for reservation listings. Nil fields are not applied.
type ReservationFilter struct {
	SpaceID     *int64
	RequesterID *int64
	Date        *time.Time
	DateFrom    *time.Time
	DateTo      *time.Time
	Status      *ReservationStatus
	Page        int // 1-based
	Limit       int
}

// Offset returns the row offset for Page and Limit
func (f ReservationFilter) Offset() int {
	return pageOffset(f.Page, f.Limit)
}

// ReservationPage one page of a listing together with the total match count
type ReservationPage struct {
	Reservations []*Reservation
	Total        int
	Page         int
	Limit        int
}

// Pages returns the number of pages for Total and Limit
func (p *ReservationPage) Pages() int {
	return pageCount(p.Total, p.Limit)
}

func pageOffset(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * limit
}

func pageCount(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
