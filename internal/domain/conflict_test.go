package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBooking(id int64, status BookingStatus, startHour, endHour int) *Booking {
	return &Booking{
		ID:        id,
		RoomID:    1,
		UserID:    1,
		StartTime: at(startHour, 0),
		EndTime:   at(endHour, 0),
		Status:    status,
	}
}

func TestFindConflict(t *testing.T) {
	t.Run("overlapping active booking is a conflict", func(t *testing.T) {
		candidate := mustRange(t, at(11, 0), at(13, 0))
		existing := []*Booking{makeBooking(1, StatusConfirmed, 10, 12)}

		found := FindConflict(candidate, existing)
		require.NotNil(t, found)
		assert.Equal(t, int64(1), found.ID)
	})

	t.Run("pending bookings block too", func(t *testing.T) {
		candidate := mustRange(t, at(10, 0), at(11, 0))
		existing := []*Booking{makeBooking(2, StatusPending, 10, 12)}

		assert.True(t, HasConflict(candidate, existing))
	})

	t.Run("inactive bookings never block", func(t *testing.T) {
		candidate := mustRange(t, at(10, 0), at(12, 0))
		existing := []*Booking{
			makeBooking(1, StatusCancelled, 10, 12),
			makeBooking(2, StatusCompleted, 10, 12),
			makeBooking(3, StatusNoShow, 10, 12),
		}

		assert.False(t, HasConflict(candidate, existing))
		assert.Nil(t, FindConflict(candidate, existing))
	})

	t.Run("touching boundary is not a conflict", func(t *testing.T) {
		candidate := mustRange(t, at(12, 0), at(13, 0))
		existing := []*Booking{makeBooking(1, StatusConfirmed, 10, 12)}

		assert.False(t, HasConflict(candidate, existing))
	})

	t.Run("empty set has no conflicts", func(t *testing.T) {
		candidate := mustRange(t, at(10, 0), at(12, 0))
		assert.False(t, HasConflict(candidate, nil))
	})

	t.Run("first overlapping booking wins", func(t *testing.T) {
		candidate := mustRange(t, at(10, 0), at(14, 0))
		existing := []*Booking{
			makeBooking(1, StatusCancelled, 10, 11),
			makeBooking(2, StatusConfirmed, 11, 12),
			makeBooking(3, StatusConfirmed, 12, 13),
		}

		found := FindConflict(candidate, existing)
		require.NotNil(t, found)
		assert.Equal(t, int64(2), found.ID)
	})
}

func TestBookingIsActive(t *testing.T) {
	assert.True(t, makeBooking(1, StatusPending, 10, 11).IsActive())
	assert.True(t, makeBooking(1, StatusConfirmed, 10, 11).IsActive())
	assert.False(t, makeBooking(1, StatusCancelled, 10, 11).IsActive())
	assert.False(t, makeBooking(1, StatusCompleted, 10, 11).IsActive())
	assert.False(t, makeBooking(1, StatusNoShow, 10, 11).IsActive())
}
