package calculate_price

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
	msgInvalidRoomID = "некорректный ID комнаты"
	msgMissingTime   = "параметры startTime и endTime обязательны"
	msgInvalidTime   = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidRange  = "конец интервала должен быть позже начала"
	msgRoomNotFound  = "комната не найдена"
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

// Handle GET /api/v1/rooms/{roomId}/price
// Query params: startTime (required, RFC 3339), endTime (required, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем roomId из URL
	roomIDStr := vars["roomId"]
	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/price - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Извлекаем границы интервала из query параметров
	startTimeStr := r.URL.Query().Get("startTime")
	endTimeStr := r.URL.Query().Get("endTime")
	if startTimeStr == "" || endTimeStr == "" {
		h.logger.Warn("GET /rooms/{id}/price - Missing time params: room_id=%d", roomID)
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	startTime, err := time.Parse(time.RFC3339, startTimeStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/price - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	endTime, err := time.Parse(time.RFC3339, endTimeStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/price - Invalid end time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Считаем цену
	result, err := h.service.CalculatePrice(r.Context(), roomID, startTime, endTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("GET /rooms/{id}/price - Invalid range: room_id=%d", roomID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/price - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/price - Failed to calculate price: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/price - Price calculated successfully: room_id=%d, total=%f",
		roomID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, result)
}
