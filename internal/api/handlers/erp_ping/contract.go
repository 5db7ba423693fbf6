package erp_ping

import (
	"context"

	"github.com/hybrid24/H24-BookingService/internal/integrations/onec"
)

// ERPSyncService интерфейс сервиса синхронизации с 1С
type ERPSyncService interface {
	Ping(ctx context.Context) (*onec.PingResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
