package get_available_slots

import (
	"time"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	RoomID          int64     // ID комнаты
	StartDate       time.Time // Первый день периода (без времени)
	EndDate         time.Time // Последний день периода включительно (без времени)
	DurationMinutes int       // Длительность слота в минутах
}

// Response модель ответа со списком слотов
type Response struct {
	RoomID          int64  // ID комнаты
	DurationMinutes int    // Длительность слота
	Slots           []Slot // Упорядоченный список слотов за весь период
}

// Slot модель временного слота
type Slot struct {
	StartTime   time.Time // Начало слота (включительно)
	EndTime     time.Time // Конец слота (исключительно)
	IsAvailable bool      // Свободен ли слот
	Price       float64   // Цена слота по текущей почасовой ставке комнаты
}
