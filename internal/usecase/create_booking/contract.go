package create_booking

import (
	"context"
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/integrations/notifyservice"
	"github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListActiveInRange(ctx context.Context, roomID int64, from, to time.Time) ([]*domain.Booking, error)
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetRoom(ctx context.Context, roomID int64) (*studioservice.Room, error)
}

// NotificationClient интерфейс клиента для NotificationService
type NotificationClient interface {
	Emit(ctx context.Context, eventType string, payload notifyservice.BookingPayload) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
