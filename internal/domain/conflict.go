package domain

import (
	"errors"
	"fmt"
	"time"
)

// AdmissionRequest a proposed reservation to be checked by CheckAdmission
type AdmissionRequest struct {
	SpaceID   int64
	Date      time.Time
	Range     TimeRange
	PartySize int
	// ExcludeReservationID skips the reservation being edited in place
	ExcludeReservationID *int64
}

// CheckAdmission decides whether req may be admitted against the snapshot of
// active reservations. It returns nil on admission or the first failing
// precondition, in this order: space status, range validity, party size,
// overlap with an active reservation of the same space and date.
//
// The result is a pure function of its inputs. Callers must pass a snapshot
// read inside the same transaction as the subsequent write.
func CheckAdmission(req AdmissionRequest, space Space, active []*Reservation) error {
	if !space.IsBookable() {
		return fmt.Errorf("%w: space %d is %s", ErrSpaceUnavailable, space.ID, space.Status)
	}
	if err := req.Range.Validate(); err != nil {
		return err
	}
	if req.PartySize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPartySize, req.PartySize)
	}
	if !space.FitsParty(req.PartySize) {
		return fmt.Errorf("%w: %d people, capacity %d", ErrCapacityExceeded, req.PartySize, space.Capacity)
	}
	if conflict := FindConflict(req, active); conflict != nil {
		return fmt.Errorf("%w: reservation %d holds %s", ErrSlotConflict, conflict.ID, conflict.Range)
	}
	return nil
}

// IsAdmissible is CheckAdmission reduced to a boolean
func IsAdmissible(req AdmissionRequest, space Space, active []*Reservation) bool {
	return CheckAdmission(req, space, active) == nil
}

// FindConflict returns the first active reservation of req's space and date
// overlapping req.Range, skipping ExcludeReservationID. Returns nil if none.
func FindConflict(req AdmissionRequest, active []*Reservation) *Reservation {
	for _, r := range active {
		if r == nil || !r.IsActive() {
			continue
		}
		if r.SpaceID != req.SpaceID || !SameDate(r.Date, req.Date) {
			continue
		}
		if req.ExcludeReservationID != nil && r.ID == *req.ExcludeReservationID {
			continue
		}
		if Overlaps(r.Range, req.Range) {
			return r
		}
	}
	return nil
}

// Admission outcomes reported by AdmissionOutcome
const (
	OutcomeAdmitted         = "admitted"
	OutcomeSlotConflict     = "slot_conflict"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeSpaceUnavailable = "space_unavailable"
	OutcomeInvalidRange     = "invalid_range"
	OutcomeInvalidPartySize = "invalid_party_size"
	OutcomeOther            = "other"
)

// AdmissionOutcome names the result of an admission attempt
func AdmissionOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeAdmitted
	case errors.Is(err, ErrSlotConflict):
		return OutcomeSlotConflict
	case errors.Is(err, ErrCapacityExceeded):
		return OutcomeCapacityExceeded
	case errors.Is(err, ErrSpaceUnavailable):
		return OutcomeSpaceUnavailable
	case errors.Is(err, ErrInvalidRange):
		return OutcomeInvalidRange
	case errors.Is(err, ErrInvalidPartySize):
		return OutcomeInvalidPartySize
	default:
		return OutcomeOther
	}
}
