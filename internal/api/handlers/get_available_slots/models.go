package get_available_slots

import (
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	getAvailableSlots "github.com/makarovaK/STR-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime   string  `json:"startTime"` // RFC 3339
	EndTime     string  `json:"endTime"`   // RFC 3339
	IsAvailable bool    `json:"isAvailable"`
	Price       float64 `json:"price"`
}

// AvailableSlotsResponse HTTP ответ со списком слотов
type AvailableSlotsResponse struct {
	RoomID          int64          `json:"roomId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из параметров HTTP запроса
func ToUseCaseRequest(roomID int64, startDateStr, endDateStr string, durationMinutes int) (*getAvailableSlots.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, err
	}

	// Если конец периода не указан, запрашивается один день
	endDate := startDate
	if endDateStr != "" {
		endDate, err = time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		RoomID:          roomID,
		StartDate:       startDate,
		EndDate:         endDate,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:   slot.StartTime.Format(time.RFC3339),
			EndTime:     slot.EndTime.Format(time.RFC3339),
			IsAvailable: slot.IsAvailable,
			Price:       slot.Price,
		}
	}

	return &AvailableSlotsResponse{
		RoomID:          resp.RoomID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
