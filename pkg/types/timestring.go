package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

// TimeString represents a wall-clock time of day in "HH:MM" format.
// Used for business hours boundaries, where only the time of day
// matters and the date is supplied separately.
type TimeString string

// NewTimeStringFromString парсит строку "HH:MM" с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат строки
func (t TimeString) Validate() error {
	if _, err := time.Parse("15:04", string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// HourMinute возвращает часы и минуты. Значение должно быть провалидировано.
func (t TimeString) HourMinute() (int, int) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, 0
	}
	return parsed.Hour(), parsed.Minute()
}

// TotalMinutes возвращает количество минут с начала суток
func (t TimeString) TotalMinutes() int {
	h, m := t.HourMinute()
	return h*60 + m
}

// IsBefore проверяет, что t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.TotalMinutes() < other.TotalMinutes()
}

// OnDate совмещает время суток с датой в указанной локации
func (t TimeString) OnDate(date time.Time) time.Time {
	h, m := t.HourMinute()
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

// String implements fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}
