package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/makarovaK/STR-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/makarovaK/STR-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRoomID    = "некорректный ID комнаты"
	msgMissingDate      = "дата начала периода обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "некорректная длительность слота"
	msgRoomNotFound     = "комната не найдена"
	msgInvalidInput     = "некорректные параметры запроса"
	msgStoreUnavailable = "сервис временно недоступен"
)

// defaultDurationMinutes длительность слота по умолчанию
const defaultDurationMinutes = 60

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/available-slots
// Query params: startDate (required, YYYY-MM-DD), endDate (optional), durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем roomId из URL
	roomIDStr := vars["roomId"]
	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/available-slots - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Извлекаем startDate из query параметров
	startDateStr := r.URL.Query().Get("startDate")
	if startDateStr == "" {
		h.logger.Warn("GET /rooms/{id}/available-slots - Missing start date: room_id=%d", roomID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	endDateStr := r.URL.Query().Get("endDate")

	// Извлекаем durationMinutes из query параметров (опционально)
	durationMinutes := defaultDurationMinutes
	if durationStr := r.URL.Query().Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(roomID, startDateStr, endDateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/available-slots - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/available-slots - Invalid input: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrStoreUnavailable):
			h.logger.Error("GET /rooms/{id}/available-slots - Store unavailable: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /rooms/{id}/available-slots - Failed to get slots: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /rooms/{id}/available-slots - Slots retrieved successfully: room_id=%d, slots_count=%d",
		roomID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
