package telegram

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrSendFailed возвращается, когда Telegram API отклонил отправку сообщения
	ErrSendFailed = errors.New("telegram client: send failed")
)
