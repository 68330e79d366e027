package create_booking

import (
	"time"

	createBooking "github.com/makarovaK/STR-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID    int64   `json:"roomId"`
	StartTime string  `json:"startTime"` // RFC 3339, "2026-09-14T10:00:00Z"
	EndTime   string  `json:"endTime"`   // RFC 3339
	Notes     *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64   `json:"id"`
	RoomID     int64   `json:"roomId"`
	UserID     int64   `json:"userId"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
	RoomName   string  `json:"roomName"`
	HourlyRate float64 `json:"hourlyRate"`
	Notes      *string `json:"notes,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим границы интервала
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RoomID:    r.RoomID,
		UserID:    userID,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		RoomID:     resp.RoomID,
		UserID:     resp.UserID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		Status:     resp.Status,
		TotalPrice: resp.TotalPrice,
		RoomName:   resp.RoomName,
		HourlyRate: resp.HourlyRate,
		Notes:      resp.Notes,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
