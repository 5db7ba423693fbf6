package onec

import "errors"

var (
	// ErrCounterpartyNotFound возвращается, когда контрагент с таким телефоном
	// не найден в контактной информации 1С
	ErrCounterpartyNotFound = errors.New("onec client: counterparty not found")

	// ErrUnavailable возвращается при сетевых ошибках и таймаутах —
	// 1С недоступна, а не "данных нет"
	ErrUnavailable = errors.New("onec client: 1C is unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе OData
	ErrInvalidResponse = errors.New("onec client: invalid response")

	// ErrRemoteRejected возвращается, когда 1С отклонила документ (не-2xx статус)
	ErrRemoteRejected = errors.New("onec client: document rejected by 1C")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("onec client: internal error")
)
