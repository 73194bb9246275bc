package domain

import "errors"

// Admission and lifecycle errors. They are deterministic business outcomes:
// retrying with the same input yields the same error.
var (
	// ErrInvalidRange malformed or inverted time bounds
	ErrInvalidRange = errors.New("invalid time range")

	// ErrInvalidPartySize party size is not a positive number
	ErrInvalidPartySize = errors.New("party size must be positive")

	// ErrCapacityExceeded party size is above the space capacity
	ErrCapacityExceeded = errors.New("party size exceeds space capacity")

	// ErrSpaceUnavailable target space is not in available status
	ErrSpaceUnavailable = errors.New("space is not available for reservations")

	// ErrSlotConflict proposed range overlaps an active reservation
	ErrSlotConflict = errors.New("time slot conflicts with an existing reservation")

	// ErrInvalidTransition status change is not in the lifecycle table
	ErrInvalidTransition = errors.New("invalid reservation status transition")

	// ErrNotModifiable reservation is past the statuses that allow editing
	ErrNotModifiable = errors.New("reservation cannot be modified in its current status")

	// ErrInvalidPurpose purpose text is too short or too long
	ErrInvalidPurpose = errors.New("invalid reservation purpose")

	// ErrPastSchedule reservation date or start time has already passed
	ErrPastSchedule = errors.New("reservation date is in the past")

	// ErrBeyondHorizon reservation date is further ahead than bookings are accepted
	ErrBeyondHorizon = errors.New("reservation date is too far in the future")

	// ErrUnauthorized caller is not allowed to trigger the transition
	ErrUnauthorized = errors.New("caller is not allowed to perform this action")
)
