package create_booking

import (
	"fmt"
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDuration проверяет границы длительности бронирования
func validateDuration(r domain.TimeRange) error {
	minutes := r.Minutes()

	if minutes < domain.MinBookingDurationMinutes {
		return fmt.Errorf("%w: booking must be at least %d minutes", ErrInvalidInput, domain.MinBookingDurationMinutes)
	}

	if minutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: booking must be at most %d minutes", ErrInvalidInput, domain.MaxBookingDurationMinutes)
	}

	return nil
}

// validateStartNotInPast проверяет, что бронирование начинается в будущем
func validateStartNotInPast(start, now time.Time) error {
	if start.Before(now) {
		return ErrStartTimeInPast
	}
	return nil
}
