package sync_booking

import (
	"context"

	"github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
)

// ERPSyncService интерфейс сервиса синхронизации с 1С
type ERPSyncService interface {
	SubmitByID(ctx context.Context, bookingID int64) (*models.SyncResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
