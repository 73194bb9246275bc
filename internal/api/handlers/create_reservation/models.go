package create_reservation

import (
	"errors"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	"github.com/m04kA/SpaceBookingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SpaceBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SpaceBookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date format")
	errInvalidTime = errors.New("invalid time format")
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpaceID   int64  `json:"spaceId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:30"
	PartySize int    `json:"partySize"`
	Purpose   string `json:"purpose"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(requesterID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createReservation.Request{
		RequesterID: requesterID,
		SpaceID:     r.SpaceID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		PartySize:   r.PartySize,
		Purpose:     r.Purpose,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *models.ReservationResponse {
	return models.FromDomainReservation(resp.Reservation)
}
