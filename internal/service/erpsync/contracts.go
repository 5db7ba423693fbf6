package erpsync

import (
	"context"

	"github.com/hybrid24/H24-BookingService/internal/domain"
	"github.com/hybrid24/H24-BookingService/internal/integrations/onec"
)

// ERPClient интерфейс клиента 1С OData
type ERPClient interface {
	FindCounterpartyByPhone(ctx context.Context, phone string) (*domain.Client, error)
	DiscoverVehicle(ctx context.Context, client *domain.Client) *domain.Vehicle
	FindMarketingProgramKey(ctx context.Context, promotion string) (string, error)
	FirstRepairTypeKey(ctx context.Context) (string, error)
	SubmitRepairRequest(ctx context.Context, doc onec.RepairRequestDocument) (*onec.SubmitResult, error)
	Ping(ctx context.Context) (*onec.PingResult, error)
}

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkSynced(ctx context.Context, id int64, info domain.SyncInfo) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
