package get_available_slots

import (
	"context"
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveInRange получает активные бронирования комнаты, пересекающиеся с [from, to)
	ListActiveInRange(ctx context.Context, roomID int64, from, to time.Time) ([]*domain.Booking, error)
}

// StudioServiceClient интерфейс клиента для StudioService
type StudioServiceClient interface {
	GetRoom(ctx context.Context, roomID int64) (*studioservice.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
