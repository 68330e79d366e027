package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name       string
		start, end [2]int // hour, minute
		hourlyRate float64
		want       float64
	}{
		{"two full hours", [2]int{10, 0}, [2]int{12, 0}, 100, 200},
		{"fractional hours charged exactly", [2]int{10, 0}, [2]int{11, 30}, 100, 150},
		{"half hour", [2]int{10, 0}, [2]int{10, 30}, 100, 50},
		{"ninety minutes at odd rate", [2]int{10, 0}, [2]int{11, 30}, 75, 112.5},
		{"zero rate", [2]int{10, 0}, [2]int{12, 0}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRange(t, at(tt.start[0], tt.start[1]), at(tt.end[0], tt.end[1]))
			assert.InDelta(t, tt.want, Price(r, tt.hourlyRate), 1e-9)
		})
	}
}
