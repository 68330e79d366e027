package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	studioClient "github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
)

// UseCase use case для получения доступных слотов для бронирования.
// Чисто читающая операция: результат - детерминированная функция от
// расписания комнаты и набора активных бронирований, ничего не изменяет.
type UseCase struct {
	bookingRepo  BookingRepository
	studioClient StudioServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	studioClient StudioServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		studioClient: studioClient,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%d, period=%s..%s, duration=%d",
		req.RoomID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем комнату (расписание работы и почасовая ставка)
	room, err := uc.studioClient.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, studioClient.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Получаем активные бронирования комнаты на весь период одним запросом
	days := daysBetween(req.StartDate, req.EndDate)
	periodFrom := days[0]
	periodTo := days[len(days)-1].AddDate(0, 0, 1)

	bookings, err := uc.bookingRepo.ListActiveInRange(ctx, req.RoomID, periodFrom, periodTo)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrStoreUnavailable, err)
	}

	// 4. Генерируем слоты по дням и помечаем занятость
	slots := make([]Slot, 0)
	for _, day := range days {
		schedule := getWorkingHoursForDay(room, day)

		candidates, err := generateDaySlots(day, schedule, req.DurationMinutes)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for %s: %v",
				day.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		slots = append(slots, markAvailability(candidates, bookings, room.HourlyRate)...)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for room=%d over %d days",
		len(slots), req.RoomID, len(days))

	return &Response{
		RoomID:          req.RoomID,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}
