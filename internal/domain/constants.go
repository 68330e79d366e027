package domain

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	MinBookingDurationMinutes = 30
	MaxBookingDurationMinutes = 24 * 60

	// MaxAvailabilitySpanDays ограничение длины периода при запросе слотов
	MaxAvailabilitySpanDays = 31
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotDurationOptions допустимые длительности слота в минутах
// Используется для валидации параметра durationMinutes при запросе слотов
var SlotDurationOptions = []int{30, 60, 90, 120, 180, 240}

// IsValidSlotDuration проверяет, что длительность слота входит в список допустимых
func IsValidSlotDuration(minutes int) bool {
	for _, option := range SlotDurationOptions {
		if minutes == option {
			return true
		}
	}
	return false
}

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при проверке пересечений
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ActiveStatuses список статусов, участвующих в проверке конфликтов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
