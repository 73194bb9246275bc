package update_reservation

import (
	"errors"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	updateReservation "github.com/m04kA/SpaceBookingService/internal/usecase/update_reservation"
	"github.com/m04kA/SpaceBookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date format")
	errInvalidTime = errors.New("invalid time format")
)

// UpdateReservationRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateReservationRequest struct {
	SpaceID   *int64  `json:"spaceId,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	PartySize *int    `json:"partySize,omitempty"`
	Purpose   *string `json:"purpose,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(actor domain.Actor, reservationID int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		Actor:         actor,
		ReservationID: reservationID,
		SpaceID:       r.SpaceID,
		PartySize:     r.PartySize,
		Purpose:       r.Purpose,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, errInvalidTime
		}
		req.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, errInvalidTime
		}
		req.EndTime = &end
	}

	return req, nil
}
