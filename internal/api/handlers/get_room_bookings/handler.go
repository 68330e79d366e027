package get_room_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/makarovaK/STR-BookingService/internal/api/handlers"
	"github.com/makarovaK/STR-BookingService/internal/service/bookings"
)

const (
	msgInvalidRoomID    = "некорректный ID комнаты"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректные параметры фильтра"
	msgStoreUnavailable = "сервис временно недоступен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/bookings
// Query params: startDate, endDate (YYYY-MM-DD), status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем roomId из URL
	roomIDStr := vars["roomId"]
	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/bookings - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()
	includeInactive := query.Get("includeInactive") == "true"

	// Формируем запрос к сервису (с парсингом дат)
	serviceReq, err := ToServiceRequest(
		roomID,
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("status"),
		includeInactive,
	)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем бронирования комнаты
	result, err := h.service.GetRoomBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/bookings - Invalid filter: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /rooms/{id}/bookings - Store unavailable: room_id=%d, error=%v", roomID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /rooms/{id}/bookings - Failed to get bookings: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/bookings - Bookings retrieved successfully: room_id=%d, count=%d",
		roomID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
