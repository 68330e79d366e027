package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	bookingRepo "github.com/makarovaK/STR-BookingService/internal/infra/storage/booking"
	"github.com/makarovaK/STR-BookingService/internal/integrations/notifyservice"
	studioClient "github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
	"github.com/makarovaK/STR-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, переходы статусов,
// расчет цены и административное удаление.
//
// Переходы статусов идут через машину состояний domain.Transition.
// Временные предусловия (бронирование закончилось / началось) проверяются
// здесь, машина состояний остается чистой функцией пары статусов.
type Service struct {
	bookingRepo  BookingRepository
	studioClient StudioServiceClient
	notifyClient NotificationClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	studioClient StudioServiceClient,
	notifyClient NotificationClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		studioClient: studioClient,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetRoomBookings получает бронирования комнаты с гибкой фильтрацией
// по периоду, статусу и включению неактивных бронирований
func (s *Service) GetRoomBookings(ctx context.Context, req *models.GetRoomBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRoomBookings: fetching bookings for room=%d, includeInactive=%t", req.RoomID, req.IncludeInactive)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetRoomBookings: invalid filter for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByRoomWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRoomBookings: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomBookings - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("GetRoomBookings: successfully fetched %d bookings for room=%d", len(bookings), req.RoomID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование (PENDING -> CONFIRMED)
func (s *Service) Confirm(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", bookingID)

	return s.applyTransition(ctx, "Confirm", bookingID, domain.StatusConfirmed, notifyservice.EventBookingConfirmed, nil)
}

// Cancel отменяет бронирование (PENDING/CONFIRMED -> CANCELLED)
// с опциональной причиной отмены
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.applyTransition(ctx, "Cancel", bookingID, domain.StatusCancelled, notifyservice.EventBookingCancelled, req.Reason)
}

// Complete завершает бронирование (CONFIRMED -> COMPLETED)
// Допустимо только после окончания бронирования
func (s *Service) Complete(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return nil, err
	}

	// Временное предусловие: бронирование должно закончиться
	if s.timeProvider.Now().Before(booking.EndTime) {
		s.logger.Warn("Complete: booking id=%d has not ended yet (end=%s)",
			bookingID, booking.EndTime.Format(time.RFC3339))
		return nil, ErrBookingNotEnded
	}

	return s.applyTransition(ctx, "Complete", bookingID, domain.StatusCompleted, notifyservice.EventBookingCompleted, nil)
}

// MarkNoShow отмечает неявку клиента (CONFIRMED -> NO_SHOW)
// Допустимо только после начала бронирования
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("MarkNoShow: marking no-show for booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, "MarkNoShow", bookingID)
	if err != nil {
		return nil, err
	}

	// Временное предусловие: бронирование должно начаться
	if s.timeProvider.Now().Before(booking.StartTime) {
		s.logger.Warn("MarkNoShow: booking id=%d has not started yet (start=%s)",
			bookingID, booking.StartTime.Format(time.RFC3339))
		return nil, ErrBookingNotStarted
	}

	return s.applyTransition(ctx, "MarkNoShow", bookingID, domain.StatusNoShow, notifyservice.EventBookingNoShow, nil)
}

// CheckAvailability проверяет, свободен ли интервал в комнате.
// Чисто читающая проверка без блокировок: ответ носит информационный
// характер, окончательная проверка выполняется при создании бронирования.
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, startTime, endTime time.Time) (*models.AvailabilityResponse, error) {
	s.logger.Info("CheckAvailability: room=%d, start=%s, end=%s",
		roomID, startTime.Format(time.RFC3339), endTime.Format(time.RFC3339))

	candidate, err := domain.NewTimeRange(startTime, endTime)
	if err != nil {
		s.logger.Warn("CheckAvailability: invalid range: %v", err)
		return nil, err
	}

	active, err := s.bookingRepo.ListActiveInRange(ctx, roomID, startTime, endTime)
	if err != nil {
		s.logger.Error("CheckAvailability: repository error for room=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: CheckAvailability - repository error: %v", ErrStoreUnavailable, err)
	}

	return &models.AvailabilityResponse{
		RoomID:      roomID,
		StartTime:   candidate.Start().Format(time.RFC3339),
		EndTime:     candidate.End().Format(time.RFC3339),
		IsAvailable: !domain.HasConflict(candidate, active),
	}, nil
}

// CalculatePrice считает цену бронирования комнаты за интервал
// по текущей почасовой ставке. Ничего не изменяет.
func (s *Service) CalculatePrice(ctx context.Context, roomID int64, startTime, endTime time.Time) (*models.PriceResponse, error) {
	s.logger.Info("CalculatePrice: room=%d, start=%s, end=%s",
		roomID, startTime.Format(time.RFC3339), endTime.Format(time.RFC3339))

	bookingRange, err := domain.NewTimeRange(startTime, endTime)
	if err != nil {
		s.logger.Warn("CalculatePrice: invalid range: %v", err)
		return nil, err
	}

	room, err := s.studioClient.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, studioClient.ErrRoomNotFound) {
			s.logger.Warn("CalculatePrice: room id=%d not found", roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("CalculatePrice: failed to get room id=%d: %v", roomID, err)
		return nil, fmt.Errorf("%w: CalculatePrice - failed to get room: %v", ErrInternal, err)
	}

	return &models.PriceResponse{
		RoomID:          roomID,
		StartTime:       bookingRange.Start().Format(time.RFC3339),
		EndTime:         bookingRange.End().Format(time.RFC3339),
		DurationMinutes: bookingRange.Minutes(),
		HourlyRate:      room.HourlyRate,
		TotalPrice:      domain.Price(bookingRange, room.HourlyRate),
	}, nil
}

// Delete физически удаляет бронирование в обход машины статусов.
// Административный путь: история теряется, для обычной отмены использовать Cancel.
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	s.logger.Warn("Delete: permanently deleting booking id=%d", bookingID)

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Delete: booking id=%d deleted", bookingID)
	return nil
}

// Вспомогательные методы

// getBooking загружает бронирование, транслируя ошибки репозитория в ошибки сервиса
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}
	return booking, nil
}

// applyTransition выполняет переход статуса: загружает бронирование,
// проверяет переход через машину состояний, сохраняет и публикует событие.
// Событие публикуется после записи; ошибка доставки только логируется.
func (s *Service) applyTransition(
	ctx context.Context,
	op string,
	bookingID int64,
	target domain.BookingStatus,
	eventType string,
	cancelReason *string,
) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, op, bookingID)
	if err != nil {
		return nil, err
	}

	newStatus, err := domain.Transition(booking.Status, target)
	if err != nil {
		s.logger.Warn("%s: illegal transition %s -> %s for booking id=%d", op, booking.Status, target, bookingID)
		return nil, err
	}

	// Сохраняем новый статус
	if target == domain.StatusCancelled {
		err = s.bookingRepo.Cancel(ctx, bookingID, cancelReason)
	} else {
		err = s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus)
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found during update", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}

	booking.Status = newStatus
	if target == domain.StatusCancelled {
		booking.CancellationReason = cancelReason
		now := s.timeProvider.Now()
		booking.CancelledAt = &now
	}

	// Публикуем событие после успешной записи (best-effort)
	if err := s.notifyClient.Emit(ctx, eventType, notifyservice.BookingPayload{
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		UserID:     booking.UserID,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		Status:     string(booking.Status),
		TotalPrice: booking.TotalPrice,
		Reason:     cancelReason,
	}); err != nil {
		s.logger.Warn("%s: failed to emit %s for booking id=%d: %v", op, eventType, bookingID, err)
	}

	s.logger.Info("%s: booking id=%d transitioned to %s", op, bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}
