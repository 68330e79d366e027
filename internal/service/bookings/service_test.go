package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	bookingRepo "github.com/makarovaK/STR-BookingService/internal/infra/storage/booking"
	"github.com/makarovaK/STR-BookingService/internal/integrations/notifyservice"
	"github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
	"github.com/makarovaK/STR-BookingService/internal/service/bookings/models"
	"github.com/makarovaK/STR-BookingService/pkg/ptr"
)

// --- Фейки ---

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	repo := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		stored := *b
		repo.bookings[b.ID] = &stored
	}
	return repo
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) ListActiveInRange(_ context.Context, roomID int64, from, to time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.RoomID != roomID || !b.IsActive() {
			continue
		}
		if b.StartTime.Before(to) && from.Before(b.EndTime) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeRepo) GetByRoomWithFilter(_ context.Context, filter domain.RoomBookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.RoomID != filter.RoomID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = reason
	b.CancelledAt = &now
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type fakeStudioClient struct {
	room *studioservice.Room
}

func (c *fakeStudioClient) GetRoom(_ context.Context, roomID int64) (*studioservice.Room, error) {
	if c.room == nil || c.room.ID != roomID {
		return nil, studioservice.ErrRoomNotFound
	}
	return c.room, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *fakeNotifier) Emit(_ context.Context, eventType string, _ notifyservice.BookingPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventType)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

// --- Общие данные ---

var testNow = time.Date(2026, 9, 14, 14, 0, 0, 0, time.UTC)

func testBooking(id int64, status domain.BookingStatus, startHour, endHour int) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		RoomID:     1,
		UserID:     42,
		StartTime:  time.Date(2026, 9, 14, startHour, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 14, endHour, 0, 0, 0, time.UTC),
		Status:     status,
		TotalPrice: 200,
		RoomName:   "Drum Room A",
		HourlyRate: 100,
	}
}

func setupService(repo *fakeRepo, notifier *fakeNotifier) *Service {
	svc := NewService(repo, &fakeStudioClient{room: &studioservice.Room{ID: 1, Name: "Drum Room A", HourlyRate: 100}}, notifier, nopLogger{})
	svc.timeProvider = &fixedTime{now: testNow}
	return svc
}

// --- Тесты ---

func TestGetByID(t *testing.T) {
	svc := setupService(newFakeRepo(testBooking(1, domain.StatusPending, 10, 12)), &fakeNotifier{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 999)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("pending booking is confirmed and event emitted", func(t *testing.T) {
		notifier := &fakeNotifier{}
		repo := newFakeRepo(testBooking(1, domain.StatusPending, 10, 12))
		svc := setupService(repo, notifier)

		resp, err := svc.Confirm(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, []string{notifyservice.EventBookingConfirmed}, notifier.events)

		stored, _ := repo.GetByID(context.Background(), 1)
		assert.Equal(t, domain.StatusConfirmed, stored.Status)
	})

	t.Run("confirmed booking cannot be confirmed again", func(t *testing.T) {
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusConfirmed, 10, 12)), &fakeNotifier{})

		_, err := svc.Confirm(context.Background(), 1)
		var transitionErr *domain.IllegalTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, domain.StatusConfirmed, transitionErr.From)
		assert.Equal(t, domain.StatusConfirmed, transitionErr.To)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := setupService(newFakeRepo(), &fakeNotifier{})
		_, err := svc.Confirm(context.Background(), 1)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("pending booking is cancelled with reason", func(t *testing.T) {
		notifier := &fakeNotifier{}
		repo := newFakeRepo(testBooking(1, domain.StatusPending, 10, 12))
		svc := setupService(repo, notifier)

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
			Reason: ptr.Ptr("план изменился"),
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "план изменился", *resp.CancellationReason)
		assert.NotNil(t, resp.CancelledAt)
		assert.Equal(t, []string{notifyservice.EventBookingCancelled}, notifier.events)
	})

	t.Run("confirmed booking can be cancelled", func(t *testing.T) {
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusConfirmed, 10, 12)), &fakeNotifier{})

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusCompleted, 10, 12)), &fakeNotifier{})

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
		var transitionErr *domain.IllegalTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})

	t.Run("reason too long", func(t *testing.T) {
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusPending, 10, 12)), &fakeNotifier{})

		long := make([]byte, domain.MaxCancellationReasonLength+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Reason: ptr.Ptr(string(long))})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestComplete(t *testing.T) {
	t.Run("confirmed booking past its end is completed", func(t *testing.T) {
		notifier := &fakeNotifier{}
		// testNow = 14:00, бронирование 10:00-12:00 уже закончилось
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusConfirmed, 10, 12)), notifier)

		resp, err := svc.Complete(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
		assert.Equal(t, []string{notifyservice.EventBookingCompleted}, notifier.events)
	})

	t.Run("booking still in progress cannot be completed", func(t *testing.T) {
		// testNow = 14:00, бронирование 13:00-15:00 еще идет
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusConfirmed, 13, 15)), &fakeNotifier{})

		_, err := svc.Complete(context.Background(), 1)
		assert.ErrorIs(t, err, ErrBookingNotEnded)
	})

	t.Run("booking ending exactly now can be completed", func(t *testing.T) {
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusConfirmed, 12, 14)), &fakeNotifier{})

		_, err := svc.Complete(context.Background(), 1)
		require.NoError(t, err)
	})

	t.Run("pending booking cannot be completed", func(t *testing.T) {
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusPending, 10, 12)), &fakeNotifier{})

		_, err := svc.Complete(context.Background(), 1)
		var transitionErr *domain.IllegalTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestMarkNoShow(t *testing.T) {
	t.Run("confirmed booking past its start is marked", func(t *testing.T) {
		notifier := &fakeNotifier{}
		// testNow = 14:00, бронирование 13:00-15:00 уже началось
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusConfirmed, 13, 15)), notifier)

		resp, err := svc.MarkNoShow(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusNoShow), resp.Status)
		assert.Equal(t, []string{notifyservice.EventBookingNoShow}, notifier.events)
	})

	t.Run("future booking cannot be marked", func(t *testing.T) {
		// testNow = 14:00, бронирование 16:00-18:00 еще не началось
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusConfirmed, 16, 18)), &fakeNotifier{})

		_, err := svc.MarkNoShow(context.Background(), 1)
		assert.ErrorIs(t, err, ErrBookingNotStarted)
	})

	t.Run("pending booking cannot be marked", func(t *testing.T) {
		svc := setupService(newFakeRepo(testBooking(1, domain.StatusPending, 10, 12)), &fakeNotifier{})

		_, err := svc.MarkNoShow(context.Background(), 1)
		var transitionErr *domain.IllegalTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}

func TestCalculatePrice(t *testing.T) {
	svc := setupService(newFakeRepo(), &fakeNotifier{})

	t.Run("two hours", func(t *testing.T) {
		start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
		resp, err := svc.CalculatePrice(context.Background(), 1, start, start.Add(2*time.Hour))
		require.NoError(t, err)
		assert.InDelta(t, 200.0, resp.TotalPrice, 1e-9)
		assert.Equal(t, 120, resp.DurationMinutes)
	})

	t.Run("fractional hours", func(t *testing.T) {
		start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
		resp, err := svc.CalculatePrice(context.Background(), 1, start, start.Add(90*time.Minute))
		require.NoError(t, err)
		assert.InDelta(t, 150.0, resp.TotalPrice, 1e-9)
	})

	t.Run("inverted range", func(t *testing.T) {
		start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
		_, err := svc.CalculatePrice(context.Background(), 1, start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("unknown room", func(t *testing.T) {
		start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
		_, err := svc.CalculatePrice(context.Background(), 999, start, start.Add(time.Hour))
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestCheckAvailability(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed, 10, 12))
	svc := setupService(repo, &fakeNotifier{})

	t.Run("overlapping interval is busy", func(t *testing.T) {
		resp, err := svc.CheckAvailability(context.Background(), 1,
			time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.False(t, resp.IsAvailable)
	})

	t.Run("back-to-back interval is free", func(t *testing.T) {
		resp, err := svc.CheckAvailability(context.Background(), 1,
			time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, resp.IsAvailable)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.CheckAvailability(context.Background(), 1,
			time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})
}

func TestGetUserBookings(t *testing.T) {
	repo := newFakeRepo(
		testBooking(1, domain.StatusPending, 10, 12),
		testBooking(2, domain.StatusCancelled, 13, 14),
	)
	svc := setupService(repo, &fakeNotifier{})

	t.Run("all statuses", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: 42,
			Status: ptr.Ptr("PENDING"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(1), resp.Bookings[0].ID)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: 42,
			Status: ptr.Ptr("BOOKED"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown user gets empty list", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7})
		require.NoError(t, err)
		assert.Empty(t, resp.Bookings)
	})
}

func TestGetRoomBookings(t *testing.T) {
	repo := newFakeRepo(
		testBooking(1, domain.StatusPending, 10, 12),
		testBooking(2, domain.StatusCancelled, 13, 14),
	)
	svc := setupService(repo, &fakeNotifier{})

	t.Run("active only by default", func(t *testing.T) {
		resp, err := svc.GetRoomBookings(context.Background(), &models.GetRoomBookingsRequest{RoomID: 1})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(1), resp.Bookings[0].ID)
	})

	t.Run("include inactive", func(t *testing.T) {
		resp, err := svc.GetRoomBookings(context.Background(), &models.GetRoomBookingsRequest{
			RoomID:          1,
			IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.GetRoomBookings(context.Background(), &models.GetRoomBookingsRequest{
			RoomID: 1,
			Status: ptr.Ptr("BOOKED"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDelete(t *testing.T) {
	t.Run("existing booking is removed", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, domain.StatusCompleted, 10, 12))
		svc := setupService(repo, &fakeNotifier{})

		require.NoError(t, svc.Delete(context.Background(), 1))

		_, err := repo.GetByID(context.Background(), 1)
		assert.True(t, errors.Is(err, bookingRepo.ErrBookingNotFound))
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := setupService(newFakeRepo(), &fakeNotifier{})
		assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrBookingNotFound)
	})
}
