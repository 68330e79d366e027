package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/makarovaK/STR-BookingService/internal/api/handlers"
	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/service/bookings"
)

const (
	msgInvalidRoomID    = "некорректный ID комнаты"
	msgMissingTime      = "параметры startTime и endTime обязательны"
	msgInvalidTime      = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidRange     = "конец интервала должен быть позже начала"
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

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: startTime (required, RFC 3339), endTime (required, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем roomId из URL
	roomIDStr := vars["roomId"]
	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Извлекаем границы интервала из query параметров
	startTimeStr := r.URL.Query().Get("startTime")
	endTimeStr := r.URL.Query().Get("endTime")
	if startTimeStr == "" || endTimeStr == "" {
		h.logger.Warn("GET /rooms/{id}/availability - Missing time params: room_id=%d", roomID)
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	startTime, err := time.Parse(time.RFC3339, startTimeStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	endTime, err := time.Parse(time.RFC3339, endTimeStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid end time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Проверяем доступность интервала
	result, err := h.service.CheckAvailability(r.Context(), roomID, startTime, endTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid range: room_id=%d", roomID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("GET /rooms/{id}/availability - Store unavailable: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to check availability: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - Availability checked: room_id=%d, available=%t",
		roomID, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, result)
}
