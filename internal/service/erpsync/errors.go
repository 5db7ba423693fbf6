package erpsync

import "errors"

var (
	// ErrNotConfigured возвращается, когда интеграция с 1С не настроена
	ErrNotConfigured = errors.New("erpsync: 1C integration is not configured")

	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("erpsync: booking not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("erpsync: internal error")
)
