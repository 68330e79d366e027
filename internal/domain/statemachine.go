package domain

import "fmt"

// IllegalTransitionError возвращается при попытке недопустимого перехода статуса.
// Содержит исходный и запрошенный статусы для формирования ответа клиенту.
type IllegalTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("domain: illegal status transition %s -> %s", e.From, e.To)
}

// legalTransitions is the closed transition table for booking statuses.
// CANCELLED, COMPLETED and NO_SHOW are terminal: they map to nothing.
//
// The table is a pure function of (current, requested) status. Time-based
// preconditions for COMPLETED and NO_SHOW (booking must have ended or
// started) are enforced by the bookings service, not here.
var legalTransitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusCompleted: true,
		StatusNoShow:    true,
	},
}

// CanTransition reports whether the transition from -> to is legal.
func CanTransition(from, to BookingStatus) bool {
	return legalTransitions[from][to]
}

// Transition validates the transition from -> to and returns the new
// status, or an *IllegalTransitionError describing the rejected change.
func Transition(from, to BookingStatus) (BookingStatus, error) {
	if !CanTransition(from, to) {
		return from, &IllegalTransitionError{From: from, To: to}
	}
	return to, nil
}

// ValidStatuses список всех допустимых статусов бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ParseStatus конвертирует строку в BookingStatus с валидацией
func ParseStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	for _, valid := range ValidStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", fmt.Errorf("domain: invalid booking status %q", s)
}
