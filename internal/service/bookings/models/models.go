package models

import (
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetRoomBookingsRequest запрос на получение бронирований комнаты
type GetRoomBookingsRequest struct {
	RoomID          int64      `json:"roomId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить неактивные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetRoomBookingsRequest) ToDomainFilter() (domain.RoomBookingsFilter, error) {
	filter := domain.RoomBookingsFilter{
		RoomID:          r.RoomID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64   `json:"id"`
	RoomID     int64   `json:"roomId"`
	UserID     int64   `json:"userId"`
	StartTime  string  `json:"startTime"` // ISO 8601
	EndTime    string  `json:"endTime"`   // ISO 8601
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`

	// Денормализованные данные
	RoomName   string  `json:"roomName"`
	HourlyRate float64 `json:"hourlyRate"`
	Notes      *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// AvailabilityResponse ответ проверки доступности интервала
type AvailabilityResponse struct {
	RoomID      int64  `json:"roomId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// PriceResponse ответ расчета цены
type PriceResponse struct {
	RoomID          int64   `json:"roomId"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	HourlyRate      float64 `json:"hourlyRate"`
	TotalPrice      float64 `json:"totalPrice"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		RoomID:             b.RoomID,
		UserID:             b.UserID,
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.EndTime.Format(time.RFC3339),
		Status:             string(b.Status),
		TotalPrice:         b.TotalPrice,
		RoomName:           b.RoomName,
		HourlyRate:         b.HourlyRate,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}
