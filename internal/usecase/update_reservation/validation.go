package update_reservation

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.SpaceID == nil && req.Date == nil && req.StartTime == nil && req.EndTime == nil &&
		req.PartySize == nil && req.Purpose == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.SpaceID != nil && *req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}

	return nil
}
