package create_booking

import (
	"errors"
	"net/http"

	"github.com/makarovaK/STR-BookingService/internal/api/handlers"
	"github.com/makarovaK/STR-BookingService/internal/api/middleware"
	"github.com/makarovaK/STR-BookingService/internal/domain"
	createBooking "github.com/makarovaK/STR-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRoomNotFound       = "комната не найдена"
	msgTimeConflict       = "выбранный интервал пересекается с существующим бронированием"
	msgStartTimeInPast    = "начало бронирования уже прошло"
	msgInvalidRange       = "конец интервала должен быть позже начала"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgStoreUnavailable   = "сервис временно недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		var conflictErr *domain.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Time conflict: user_id=%d, room_id=%d, range=%s",
				userID, req.RoomID, conflictErr.Range)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrStartTimeInPast):
			h.logger.Warn("POST /bookings - Start time in past: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, msgStartTimeInPast)

		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, room_id=%d",
		result.ID, userID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
