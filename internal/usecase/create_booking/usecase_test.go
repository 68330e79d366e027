package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/integrations/notifyservice"
	"github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
	"github.com/makarovaK/STR-BookingService/pkg/ptr"
)

// --- Фейки ---

// fakeRepo in-memory репозиторий бронирований
type fakeRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64

	failList   bool
	failCreate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate {
		return nil, errors.New("connection refused")
	}

	stored := *booking
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.bookings = append(r.bookings, &stored)
	return &stored, nil
}

func (r *fakeRepo) ListActiveInRange(_ context.Context, roomID int64, from, to time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failList {
		return nil, errors.New("connection refused")
	}

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.RoomID != roomID || !b.IsActive() {
			continue
		}
		if b.StartTime.Before(to) && from.Before(b.EndTime) {
			result = append(result, b)
		}
	}
	return result, nil
}

// fakeTxManager сериализует транзакции мьютексом, имитируя поведение
// сериализуемых транзакций с блокировкой строк комнаты
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeStudioClient отдает фиксированную комнату
type fakeStudioClient struct {
	room *studioservice.Room
}

func (c *fakeStudioClient) GetRoom(_ context.Context, roomID int64) (*studioservice.Room, error) {
	if c.room == nil || c.room.ID != roomID {
		return nil, studioservice.ErrRoomNotFound
	}
	return c.room, nil
}

// fakeNotifier запоминает опубликованные события
type fakeNotifier struct {
	mu     sync.Mutex
	events []string
	fail   bool
}

func (n *fakeNotifier) Emit(_ context.Context, eventType string, _ notifyservice.BookingPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("notify service down")
	}
	n.events = append(n.events, eventType)
	return nil
}

func (n *fakeNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

// nopLogger глушит логи в тестах
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fixedTime детерминированное «сейчас»
type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

// --- Общие данные ---

var testNow = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

func testRoom() *studioservice.Room {
	return &studioservice.Room{
		ID:         1,
		StudioID:   1,
		Name:       "Drum Room A",
		HourlyRate: 100,
	}
}

func setupUseCase(repo *fakeRepo, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(repo, &fakeStudioClient{room: testRoom()}, notifier, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func bookingRequest(startHour, endHour int) *Request {
	return &Request{
		RoomID:    1,
		UserID:    42,
		StartTime: time.Date(2026, 9, 14, startHour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 14, endHour, 0, 0, 0, time.UTC),
	}
}

// --- Тесты ---

func TestExecuteCreatesPendingBooking(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := setupUseCase(repo, notifier)

	resp, err := uc.Execute(context.Background(), bookingRequest(10, 12))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.InDelta(t, 200.0, resp.TotalPrice, 1e-9, "2 hours at rate 100")
	assert.Equal(t, "Drum Room A", resp.RoomName)
	assert.InDelta(t, 100.0, resp.HourlyRate, 1e-9)

	assert.Equal(t, []string{notifyservice.EventBookingCreated}, notifier.recorded())
}

func TestExecuteFractionalHourPricing(t *testing.T) {
	repo := newFakeRepo()
	uc := setupUseCase(repo, &fakeNotifier{})

	req := bookingRequest(10, 10)
	req.EndTime = req.StartTime.Add(90 * time.Minute)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, resp.TotalPrice, 1e-9, "90 minutes at rate 100")
}

func TestExecuteRejectsOverlap(t *testing.T) {
	repo := newFakeRepo()
	uc := setupUseCase(repo, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), bookingRequest(10, 12))
	require.NoError(t, err)

	// Пересекающийся интервал отклоняется с типизированной ошибкой
	_, err = uc.Execute(context.Background(), bookingRequest(11, 13))
	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(1), conflictErr.RoomID)

	// Граничный интервал (start == существующий end) проходит
	_, err = uc.Execute(context.Background(), bookingRequest(12, 13))
	require.NoError(t, err)
}

func TestExecuteConcurrentRequestsOnlyOneWins(t *testing.T) {
	repo := newFakeRepo()
	uc := setupUseCase(repo, &fakeNotifier{})

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	success := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), bookingRequest(10, 12))
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			var conflictErr *domain.ConflictError
			if !errors.As(err, &conflictErr) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success, "exactly one concurrent booking must win")
	assert.Len(t, repo.bookings, 1)
}

func TestExecuteValidation(t *testing.T) {
	uc := setupUseCase(newFakeRepo(), &fakeNotifier{})

	t.Run("inverted range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), bookingRequest(12, 10))
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("too short", func(t *testing.T) {
		req := bookingRequest(10, 10)
		req.EndTime = req.StartTime.Add(15 * time.Minute)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too long", func(t *testing.T) {
		req := bookingRequest(10, 10)
		req.EndTime = req.StartTime.Add(25 * time.Hour)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("start in past", func(t *testing.T) {
		req := bookingRequest(10, 12)
		req.StartTime = testNow.Add(-time.Hour)
		req.EndTime = testNow.Add(time.Hour)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStartTimeInPast)
	})

	t.Run("notes too long", func(t *testing.T) {
		req := bookingRequest(10, 12)
		longNotes := make([]byte, domain.MaxNotesLength+1)
		for i := range longNotes {
			longNotes[i] = 'a'
		}
		req.Notes = ptr.Ptr(string(longNotes))
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown room", func(t *testing.T) {
		req := bookingRequest(10, 12)
		req.RoomID = 999
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestExecuteStoreErrors(t *testing.T) {
	t.Run("list failure maps to store unavailable", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failList = true
		uc := setupUseCase(repo, &fakeNotifier{})

		_, err := uc.Execute(context.Background(), bookingRequest(10, 12))
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("create failure maps to store unavailable", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failCreate = true
		uc := setupUseCase(repo, &fakeNotifier{})

		_, err := uc.Execute(context.Background(), bookingRequest(10, 12))
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestExecuteNotifyFailureDoesNotFailBooking(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{fail: true}
	uc := setupUseCase(repo, notifier)

	resp, err := uc.Execute(context.Background(), bookingRequest(10, 12))
	require.NoError(t, err, "notification delivery is best-effort")
	assert.Equal(t, int64(1), resp.ID)
}

func TestExecuteDifferentRoomsDoNotConflict(t *testing.T) {
	repo := newFakeRepo()
	room2 := testRoom()

	// Два клиента с разными комнатами поверх одного репозитория
	uc1 := setupUseCase(repo, &fakeNotifier{})

	room2.ID = 2
	uc2 := NewUseCase(repo, &fakeStudioClient{room: room2}, &fakeNotifier{}, &fakeTxManager{}, nopLogger{})
	uc2.timeProvider = &fixedTime{now: testNow}

	_, err := uc1.Execute(context.Background(), bookingRequest(10, 12))
	require.NoError(t, err)

	req := bookingRequest(10, 12)
	req.RoomID = 2
	_, err = uc2.Execute(context.Background(), req)
	require.NoError(t, err, "same interval in another room must not conflict")

	assert.Len(t, repo.bookings, 2)
}

func TestExecuteManySequentialBookings(t *testing.T) {
	repo := newFakeRepo()
	uc := setupUseCase(repo, &fakeNotifier{})

	for hour := 9; hour < 17; hour++ {
		_, err := uc.Execute(context.Background(), bookingRequest(hour, hour+1))
		require.NoError(t, err, fmt.Sprintf("booking %02d:00-%02d:00", hour, hour+1))
	}

	assert.Len(t, repo.bookings, 8)
}
