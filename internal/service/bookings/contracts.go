package bookings

import (
	"context"
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/integrations/notifyservice"
	"github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListActiveInRange(ctx context.Context, roomID int64, from, to time.Time) ([]*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByRoomWithFilter(ctx context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
	Delete(ctx context.Context, id int64) error
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetRoom(ctx context.Context, roomID int64) (*studioservice.Room, error)
}

// NotificationClient интерфейс клиента для NotificationService
type NotificationClient interface {
	Emit(ctx context.Context, eventType string, payload notifyservice.BookingPayload) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
