package create_booking

import (
	"context"

	"github.com/hybrid24/H24-BookingService/internal/domain"
	erpsyncModels "github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ERPSyncService интерфейс сервиса синхронизации с 1С
type ERPSyncService interface {
	SubmitBooking(ctx context.Context, booking *domain.Booking) *erpsyncModels.SyncResult
}

// Notifier интерфейс отправки уведомлений о новых заявках
type Notifier interface {
	NotifyNewBooking(ctx context.Context, booking *domain.Booking)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
