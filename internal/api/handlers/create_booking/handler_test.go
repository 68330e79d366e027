package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarovaK/STR-BookingService/internal/api/handlers"
	"github.com/makarovaK/STR-BookingService/internal/api/middleware"
	"github.com/makarovaK/STR-BookingService/internal/domain"
	createBooking "github.com/makarovaK/STR-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doCreate(t *testing.T, uc CreateBookingUseCase, body CreateBookingRequest) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	req.Header.Set("X-User-ID", "42")

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandleInvertedRange(t *testing.T) {
	// Интервал с концом раньше начала проходит парсинг RFC 3339 в handler
	// и отклоняется конструктором интервала внутри use case. Это ошибка
	// вызывающего, а не сервиса - ответ должен быть 400, не 500.
	start := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	_, rangeErr := domain.NewTimeRange(start, end)
	require.ErrorIs(t, rangeErr, domain.ErrInvalidRange)

	rec := doCreate(t, &fakeUseCase{err: rangeErr}, CreateBookingRequest{
		RoomID:    1,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgInvalidRange, resp.Error)
}

func TestHandleErrorMapping(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	body := CreateBookingRequest{
		RoomID:    1,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
	}

	bookingRange, err := domain.NewTimeRange(start, end)
	require.NoError(t, err)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "conflict maps to 409",
			err:      &domain.ConflictError{RoomID: 1, Range: bookingRange},
			wantCode: http.StatusConflict,
		},
		{
			name:     "room not found maps to 404",
			err:      fmt.Errorf("%w: room_id=1", createBooking.ErrRoomNotFound),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "invalid input maps to 400",
			err:      fmt.Errorf("%w: roomID must be positive", createBooking.ErrInvalidInput),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "store unavailable maps to 503",
			err:      fmt.Errorf("%w: insert failed: %v", createBooking.ErrStoreUnavailable, errors.New("connection refused")),
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name:     "unknown error maps to 500",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doCreate(t, &fakeUseCase{err: tt.err}, body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandleSuccess(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:         7,
		RoomID:     1,
		UserID:     42,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.StatusPending),
		TotalPrice: 200,
		RoomName:   "Студия А",
		HourlyRate: 100,
		CreatedAt:  start,
		UpdatedAt:  start,
	}}

	rec := doCreate(t, uc, CreateBookingRequest{
		RoomID:    1,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.InDelta(t, 200.0, resp.TotalPrice, 1e-9)
}

func TestHandleMissingUserHeader(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte(`{"roomId":1}`)))
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
