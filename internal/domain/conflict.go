package domain

import "fmt"

// ConflictError возвращается, когда запрошенный интервал пересекается
// с активным бронированием комнаты.
type ConflictError struct {
	RoomID int64
	Range  TimeRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("domain: room %d is already booked for %s", e.RoomID, e.Range)
}

// HasConflict reports whether the candidate range overlaps any active
// booking in the given set. Only PENDING and CONFIRMED bookings
// participate; touching boundaries are not a conflict.
//
// The function is pure: it never mutates its inputs and has no side
// effects, so callers decide the locking/transaction scope themselves.
func HasConflict(candidate TimeRange, bookings []*Booking) bool {
	return FindConflict(candidate, bookings) != nil
}

// FindConflict returns the first active booking overlapping the candidate
// range, or nil when the range is free.
func FindConflict(candidate TimeRange, bookings []*Booking) *Booking {
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}

		// Проверяем РЕАЛЬНОЕ пересечение полуоткрытых интервалов.
		// Используем строгие неравенства, чтобы граничные случаи
		// (конец одного == начало другого) не считались пересечением.
		if candidate.Overlaps(booking.Range()) {
			return booking
		}
	}
	return nil
}
