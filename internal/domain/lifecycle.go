package domain

import "fmt"

// Role of the caller as supplied by the identity provider
type Role string

const (
	RoleRequester     Role = "requester"
	RoleAdministrator Role = "administrator"
	// RoleSystem is used by the time-based lifecycle worker
	RoleSystem Role = "system"
)

// IsValid reports whether r is a role an identity token may carry
func (r Role) IsValid() bool {
	return r == RoleRequester || r == RoleAdministrator
}

// Actor identity of whoever triggers an action
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdministrator returns true for administrators
func (a Actor) IsAdministrator() bool {
	return a.Role == RoleAdministrator
}

// SystemActor the identity of scheduled, time-based transitions
var SystemActor = Actor{Role: RoleSystem}

// Trigger what drives a status transition
type Trigger string

const (
	TriggerRequester     Trigger = "requester"
	TriggerAdministrator Trigger = "administrator"
	TriggerSchedule      Trigger = "schedule"
)

type transition struct {
	from ReservationStatus
	to   ReservationStatus
}

// transitions is the single authorization table of the reservation lifecycle.
// Terminal statuses have no outgoing entries.
var transitions = map[transition][]Trigger{
	{StatusPending, StatusConfirmed}:    {TriggerAdministrator},
	{StatusPending, StatusRejected}:     {TriggerAdministrator},
	{StatusPending, StatusCancelled}:    {TriggerRequester, TriggerAdministrator},
	{StatusConfirmed, StatusCancelled}:  {TriggerRequester, TriggerAdministrator},
	{StatusConfirmed, StatusInProgress}: {TriggerSchedule, TriggerAdministrator},
	{StatusInProgress, StatusCompleted}: {TriggerSchedule, TriggerAdministrator},
}

// CanTransition reports whether from -> to exists in the table for any trigger
func CanTransition(from, to ReservationStatus) bool {
	_, ok := transitions[transition{from, to}]
	return ok
}

// AllowedTriggers returns the triggers that may drive from -> to, nil if none
func AllowedTriggers(from, to ReservationStatus) []Trigger {
	triggers := transitions[transition{from, to}]
	if triggers == nil {
		return nil
	}
	out := make([]Trigger, len(triggers))
	copy(out, triggers)
	return out
}

// AuthorizeTransition validates that actor may move r to the target status.
// A pair missing from the table fails with ErrInvalidTransition whatever the role;
// a requester acting on someone else's reservation, or a trigger not listed for
// the pair, fails with ErrUnauthorized.
func AuthorizeTransition(r *Reservation, actor Actor, to ReservationStatus) (Trigger, error) {
	allowed, ok := transitions[transition{r.Status, to}]
	if !ok {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, to)
	}

	var trigger Trigger
	switch actor.Role {
	case RoleAdministrator:
		trigger = TriggerAdministrator
	case RoleSystem:
		trigger = TriggerSchedule
	case RoleRequester:
		if !r.IsOwnedBy(actor.UserID) {
			return "", fmt.Errorf("%w: user %d does not own reservation %d", ErrUnauthorized, actor.UserID, r.ID)
		}
		trigger = TriggerRequester
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrUnauthorized, actor.Role)
	}

	for _, t := range allowed {
		if t == trigger {
			return trigger, nil
		}
	}
	return "", fmt.Errorf("%w: %s may not move reservation %s -> %s", ErrUnauthorized, trigger, r.Status, to)
}

// AuthorizeModification validates that actor may edit r in place.
// Only the owner or an administrator may edit, and only while pending or confirmed.
func AuthorizeModification(r *Reservation, actor Actor) error {
	if !actor.IsAdministrator() && !(actor.Role == RoleRequester && r.IsOwnedBy(actor.UserID)) {
		return fmt.Errorf("%w: user %d may not modify reservation %d", ErrUnauthorized, actor.UserID, r.ID)
	}
	if !r.CanBeModified() {
		return fmt.Errorf("%w: status %s", ErrNotModifiable, r.Status)
	}
	return nil
}

// CanView reports whether actor may read r
func CanView(r *Reservation, actor Actor) bool {
	return actor.IsAdministrator() || r.IsOwnedBy(actor.UserID)
}
