package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/integrations/notifyservice"
	studioClient "github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	studioClient StudioServiceClient
	notifyClient NotificationClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	studioClient StudioServiceClient,
	notifyClient NotificationClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		studioClient: studioClient,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Последовательность read-check-write выполняется в сериализуемой транзакции
// с блокировкой активных бронирований комнаты (FOR UPDATE): два одновременных
// запроса на пересекающиеся интервалы одной комнаты не могут оба увидеть
// "конфликтов нет". Бронирования других комнат создаются параллельно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%d, user=%d, start=%s, end=%s",
		req.RoomID, req.UserID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Строим интервал бронирования (end > start проверяется конструктором)
	bookingRange, err := domain.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid range: %v", err)
		return nil, err
	}

	if err := validateDuration(bookingRange); err != nil {
		uc.logger.Warn("CreateBooking: duration validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем, что бронирование в будущем
	now := uc.timeProvider.Now()
	if err := validateStartNotInPast(req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: start time %s is in the past", req.StartTime.Format(time.RFC3339))
		return nil, err
	}

	// 4. Получаем комнату (почасовая ставка для расчета цены)
	room, err := uc.studioClient.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, studioClient.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 5. Считаем цену за интервал (точные дробные часы, без округления)
	totalPrice := domain.Price(bookingRange, room.HourlyRate)

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем read-check-write в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем активные бронирования комнаты на интервал с блокировкой (FOR UPDATE)
		active, err := uc.bookingRepo.ListActiveInRange(txCtx, req.RoomID, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list active bookings: %v", err)
			return fmt.Errorf("%w: failed to list active bookings: %v", ErrStoreUnavailable, err)
		}

		// 6.2. Проверяем пересечение с активными бронированиями
		if conflicting := domain.FindConflict(bookingRange, active); conflicting != nil {
			uc.logger.Warn("CreateBooking: room=%d range=%s conflicts with booking id=%d",
				req.RoomID, bookingRange, conflicting.ID)
			return &domain.ConflictError{RoomID: req.RoomID, Range: bookingRange}
		}

		// 6.3. Создаем бронирование в статусе PENDING с денормализацией данных комнаты
		booking := &domain.Booking{
			RoomID:     req.RoomID,
			UserID:     req.UserID,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Status:     domain.StatusPending,
			TotalPrice: totalPrice,
			RoomName:   room.Name,
			HourlyRate: room.HourlyRate,
			Notes:      req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%.2f", result.ID, result.TotalPrice)

	// 7. Публикуем событие строго после коммита транзакции.
	// Доставка best-effort: ошибка логируется и не влияет на результат.
	if err := uc.notifyClient.Emit(ctx, notifyservice.EventBookingCreated, notifyservice.BookingPayload{
		BookingID:  result.ID,
		RoomID:     result.RoomID,
		UserID:     result.UserID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Status:     string(result.Status),
		TotalPrice: result.TotalPrice,
	}); err != nil {
		uc.logger.Warn("CreateBooking: failed to emit BookingCreated for id=%d: %v", result.ID, err)
	}

	// Конвертируем в response
	return &Response{
		ID:         result.ID,
		RoomID:     result.RoomID,
		UserID:     result.UserID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Status:     string(result.Status),
		TotalPrice: result.TotalPrice,
		RoomName:   result.RoomName,
		HourlyRate: result.HourlyRate,
		Notes:      result.Notes,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
