package calculate_price

import (
	"context"
	"time"

	"github.com/makarovaK/STR-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	CalculatePrice(ctx context.Context, roomID int64, startTime, endTime time.Time) (*models.PriceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
