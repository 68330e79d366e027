package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// Booking represents a room reservation in the system
type Booking struct {
	ID        int64
	RoomID    int64
	UserID    int64
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	TotalPrice float64

	// Denormalized data for history
	RoomName   string
	HourlyRate float64
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booking interval as a TimeRange.
// Stored bookings are created through NewTimeRange, so the invariant
// end > start already holds.
func (b *Booking) Range() TimeRange {
	return TimeRange{start: b.StartTime, end: b.EndTime}
}

// IsActive returns true if the booking participates in conflict checks.
// Cancelled, completed and no-show bookings are historical and never
// block new reservations.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transitions are permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}

// RoomBookingsFilter фильтр для получения бронирований комнаты
type RoomBookingsFilter struct {
	RoomID          int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, завершённые, no-show)
}
