package lookup_client

import (
	"context"

	"github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
)

// ERPSyncService интерфейс сервиса синхронизации с 1С
type ERPSyncService interface {
	LookupClient(ctx context.Context, phone string) (*models.ClientLookupResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
