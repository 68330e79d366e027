package studioservice

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("studioservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("studioservice client: invalid response")
)
