package get_room_bookings

import (
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из параметров HTTP запроса
func ToServiceRequest(roomID int64, startDateStr, endDateStr, status string, includeInactive bool) (*models.GetRoomBookingsRequest, error) {
	req := &models.GetRoomBookingsRequest{
		RoomID:          roomID,
		IncludeInactive: includeInactive,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		// Конец периода включительно: фильтр по end-of-day
		endOfDay := endDate.AddDate(0, 0, 1)
		req.EndDate = &endOfDay
	}

	if status != "" {
		req.Status = &status
	}

	return req, nil
}
