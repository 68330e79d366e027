package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrStartTimeInPast возвращается, когда начало бронирования уже прошло
	ErrStartTimeInPast = errors.New("create_booking: start time is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища.
	// Вызывающая сторона может повторить запрос с backoff.
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
