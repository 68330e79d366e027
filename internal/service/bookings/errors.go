package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrBookingNotEnded возвращается при попытке завершить бронирование
	// до наступления его конца
	ErrBookingNotEnded = errors.New("booking has not ended yet")

	// ErrBookingNotStarted возвращается при попытке отметить no-show
	// до наступления начала бронирования
	ErrBookingNotStarted = errors.New("booking has not started yet")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища.
	// Вызывающая сторона может повторить запрос с backoff.
	ErrStoreUnavailable = errors.New("service: store unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
