package get_available_slots

import (
	"fmt"

	"github.com/makarovaK/STR-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if len(daysBetween(req.StartDate, req.EndDate)) > domain.MaxAvailabilitySpanDays {
		return fmt.Errorf("%w: period must be at most %d days", ErrInvalidInput, domain.MaxAvailabilitySpanDays)
	}

	if !domain.IsValidSlotDuration(req.DurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be one of %v", ErrInvalidInput, domain.SlotDurationOptions)
	}

	return nil
}
