package check_availability

import (
	"context"
	"time"

	"github.com/makarovaK/STR-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	CheckAvailability(ctx context.Context, roomID int64, startTime, endTime time.Time) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
