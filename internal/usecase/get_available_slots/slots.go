package get_available_slots

import (
	"time"

	"github.com/makarovaK/STR-BookingService/internal/domain"
	"github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
	"github.com/makarovaK/STR-BookingService/pkg/types"
)

// generateDaySlots генерирует все кандидатные слоты на один календарный день.
// Слоты идут подряд от времени открытия с фиксированным шагом durationMinutes.
// Неполный хвостовой слот, выходящий за время закрытия, отбрасывается целиком,
// а не укорачивается. Если комната закрыта в этот день - слотов нет.
func generateDaySlots(
	day time.Time,
	schedule studioservice.DaySchedule,
	durationMinutes int,
) ([]domain.TimeRange, error) {
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return []domain.TimeRange{}, nil
	}

	// Парсим время открытия и закрытия
	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return nil, err
	}

	// Вырожденное расписание (открытие не раньше закрытия) - слотов нет
	if !openTime.IsBefore(closeTime) {
		return []domain.TimeRange{}, nil
	}

	open := openTime.OnDate(day)
	close := closeTime.OnDate(day)
	step := time.Duration(durationMinutes) * time.Minute

	slots := make([]domain.TimeRange, 0)

	for slotStart := open; slotStart.Before(close); slotStart = slotStart.Add(step) {
		slotEnd := slotStart.Add(step)

		// Слот обязан целиком помещаться в рабочие часы
		if slotEnd.After(close) {
			break
		}

		slot, err := domain.NewTimeRange(slotStart, slotEnd)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// markAvailability превращает кандидатные слоты в ответ, помечая занятость
// по активным бронированиям и считая цену каждого слота
func markAvailability(
	candidates []domain.TimeRange,
	bookings []*domain.Booking,
	hourlyRate float64,
) []Slot {
	result := make([]Slot, len(candidates))

	for i, candidate := range candidates {
		result[i] = Slot{
			StartTime:   candidate.Start(),
			EndTime:     candidate.End(),
			IsAvailable: !domain.HasConflict(candidate, bookings),
			Price:       domain.Price(candidate, hourlyRate),
		}
	}

	return result
}

// getWorkingHoursForDay возвращает расписание работы комнаты на указанный день недели
func getWorkingHoursForDay(room *studioservice.Room, date time.Time) studioservice.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return room.Hours.Monday
	case time.Tuesday:
		return room.Hours.Tuesday
	case time.Wednesday:
		return room.Hours.Wednesday
	case time.Thursday:
		return room.Hours.Thursday
	case time.Friday:
		return room.Hours.Friday
	case time.Saturday:
		return room.Hours.Saturday
	case time.Sunday:
		return room.Hours.Sunday
	default:
		return studioservice.DaySchedule{IsOpen: false}
	}
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween возвращает список календарных дней от start до end включительно
func daysBetween(start, end time.Time) []time.Time {
	days := make([]time.Time, 0)
	for day := truncateToDay(start); !day.After(truncateToDay(end)); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
