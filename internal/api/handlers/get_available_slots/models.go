package get_available_slots

import (
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SpaceBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SpaceBookingService/internal/usecase/get_available_slots"
)

var (
	errMissingDate        = errors.New("date is required")
	errInvalidDate        = errors.New("invalid date format")
	errInvalidGranularity = errors.New("invalid granularity")
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date               string          `json:"date"`
	SpaceID            int64           `json:"spaceId"`
	SpaceStatus        string          `json:"spaceStatus"`
	GranularityMinutes int             `json:"granularityMinutes"`
	Slots              []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.Start.String(),
			EndTime:   slot.End.String(),
		}
	}

	return &AvailableSlotsResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		SpaceID:            resp.Space.ID,
		SpaceStatus:        string(resp.Space.Status),
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(userID, spaceID int64, dateStr, granularityStr string) (*getAvailableSlots.Request, error) {
	if dateStr == "" {
		return nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	var granularity int
	if granularityStr != "" {
		granularity, err = strconv.Atoi(granularityStr)
		if err != nil {
			return nil, errInvalidGranularity
		}
	}

	return &getAvailableSlots.Request{
		UserID:             userID,
		SpaceID:            spaceID,
		Date:               date,
		GranularityMinutes: granularity,
	}, nil
}
