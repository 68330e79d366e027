package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end time.Time) TimeRange {
	t.Helper()
	r, err := NewTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func TestNewTimeRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := NewTimeRange(at(10, 0), at(12, 0))
		require.NoError(t, err)
		assert.Equal(t, at(10, 0), r.Start())
		assert.Equal(t, at(12, 0), r.End())
		assert.Equal(t, 2*time.Hour, r.Duration())
		assert.Equal(t, 120, r.Minutes())
	})

	t.Run("end equal to start is rejected", func(t *testing.T) {
		_, err := NewTimeRange(at(10, 0), at(10, 0))
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := NewTimeRange(at(12, 0), at(10, 0))
		require.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestTimeRangeOverlaps(t *testing.T) {
	base := mustRange(t, at(10, 0), at(12, 0))

	tests := []struct {
		name     string
		other    TimeRange
		overlaps bool
	}{
		{"identical", mustRange(t, at(10, 0), at(12, 0)), true},
		{"partial overlap at end", mustRange(t, at(11, 0), at(13, 0)), true},
		{"partial overlap at start", mustRange(t, at(9, 0), at(11, 0)), true},
		{"fully contained", mustRange(t, at(10, 30), at(11, 30)), true},
		{"fully containing", mustRange(t, at(9, 0), at(13, 0)), true},
		{"touching at end", mustRange(t, at(12, 0), at(13, 0)), false},
		{"touching at start", mustRange(t, at(9, 0), at(10, 0)), false},
		{"disjoint after", mustRange(t, at(13, 0), at(14, 0)), false},
		{"disjoint before", mustRange(t, at(8, 0), at(9, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}

func TestTimeRangeContains(t *testing.T) {
	r := mustRange(t, at(10, 0), at(12, 0))

	assert.True(t, r.Contains(at(10, 0)), "start is inclusive")
	assert.True(t, r.Contains(at(11, 30)))
	assert.False(t, r.Contains(at(12, 0)), "end is exclusive")
	assert.False(t, r.Contains(at(9, 59)))
}

func TestTimeRangeIsZero(t *testing.T) {
	assert.True(t, TimeRange{}.IsZero())
	assert.False(t, mustRange(t, at(10, 0), at(11, 0)).IsZero())
}
