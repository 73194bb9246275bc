package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if g := req.GranularityMinutes; g != 0 && (g < domain.MinSlotGranularity || g > domain.MaxSlotGranularity) {
		return fmt.Errorf("%w: granularity must be within [%d, %d] minutes",
			ErrInvalidInput, domain.MinSlotGranularity, domain.MaxSlotGranularity)
	}

	return nil
}
