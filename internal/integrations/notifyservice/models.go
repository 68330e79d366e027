package notifyservice

import "time"

// Типы событий, публикуемых сервисом бронирования
const (
	EventBookingCreated   = "BookingCreated"
	EventBookingConfirmed = "BookingConfirmed"
	EventBookingCancelled = "BookingCancelled"
	EventBookingCompleted = "BookingCompleted"
	EventBookingNoShow    = "BookingNoShow"
)

// Event конверт события для NotificationService
type Event struct {
	EventID    string      `json:"event_id"`
	EventType  string      `json:"event_type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// BookingPayload данные бронирования в событии
type BookingPayload struct {
	BookingID  int64     `json:"booking_id"`
	RoomID     int64     `json:"room_id"`
	UserID     int64     `json:"user_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	Reason     *string   `json:"reason,omitempty"`
}
