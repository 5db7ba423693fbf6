package update_booking_status

import (
	"context"

	"github.com/hybrid24/H24-BookingService/internal/service/bookings/models"
)

// BookingService интерфейс сервиса заявок
type BookingService interface {
	UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
