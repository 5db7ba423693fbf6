package create_booking

import (
	"context"

	createBooking "github.com/hybrid24/H24-BookingService/internal/usecase/create_booking"
)

// CreateBookingUseCase интерфейс use case создания заявки
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
