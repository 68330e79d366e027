package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	RoomID    int64     // ID комнаты
	UserID    int64     // ID клиента
	StartTime time.Time // Начало бронирования (включительно)
	EndTime   time.Time // Конец бронирования (исключительно)
	Notes     *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	RoomID     int64     // ID комнаты
	UserID     int64     // ID клиента
	StartTime  time.Time // Начало бронирования
	EndTime    time.Time // Конец бронирования
	Status     string    // Статус бронирования (PENDING при создании)
	TotalPrice float64   // Итоговая цена за интервал

	// Денормализованные данные комнаты
	RoomName   string  // Название комнаты
	HourlyRate float64 // Почасовая ставка на момент бронирования
	Notes      *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
