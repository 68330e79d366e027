package no_show_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/makarovaK/STR-BookingService/internal/api/handlers"
	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgNotFound          = "бронирование не найдено"
	msgIllegalTransition = "неявка не может быть отмечена из текущего статуса"
	msgNotStarted        = "бронирование еще не началось"
	msgStoreUnavailable  = "сервис временно недоступен"
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

// Handle PATCH /api/v1/bookings/{bookingId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/no-show - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Отмечаем неявку
	booking, err := h.service.MarkNoShow(r.Context(), bookingID)
	if err != nil {
		var transitionErr *domain.IllegalTransitionError
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/no-show - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrBookingNotStarted):
			h.logger.Warn("PATCH /bookings/{id}/no-show - Booking not started: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotStarted)

		case errors.As(err, &transitionErr):
			h.logger.Warn("PATCH /bookings/{id}/no-show - Illegal transition %s -> %s: booking_id=%d",
				transitionErr.From, transitionErr.To, bookingID)
			handlers.RespondConflict(w, msgIllegalTransition)

		case errors.Is(err, bookings.ErrStoreUnavailable):
			h.logger.Error("PATCH /bookings/{id}/no-show - Store unavailable: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("PATCH /bookings/{id}/no-show - Failed to mark no-show: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/no-show - No-show marked successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
