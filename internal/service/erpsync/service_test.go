package erpsync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hybrid24/H24-BookingService/internal/domain"
	bookingRepo "github.com/hybrid24/H24-BookingService/internal/infra/storage/booking"
	"github.com/hybrid24/H24-BookingService/internal/integrations/onec"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// erpStub управляемая заглушка клиента 1С
type erpStub struct {
	client       *domain.Client
	clientErr    error
	vehicle      *domain.Vehicle
	marketingKey string
	marketingErr error
	repairKey    string
	repairErr    error
	submitResult *onec.SubmitResult
	submitErr    error

	submitted *onec.RepairRequestDocument
}

func (s *erpStub) FindCounterpartyByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	return s.client, s.clientErr
}

func (s *erpStub) DiscoverVehicle(ctx context.Context, client *domain.Client) *domain.Vehicle {
	return s.vehicle
}

func (s *erpStub) FindMarketingProgramKey(ctx context.Context, promotion string) (string, error) {
	return s.marketingKey, s.marketingErr
}

func (s *erpStub) FirstRepairTypeKey(ctx context.Context) (string, error) {
	return s.repairKey, s.repairErr
}

func (s *erpStub) SubmitRepairRequest(ctx context.Context, doc onec.RepairRequestDocument) (*onec.SubmitResult, error) {
	s.submitted = &doc
	return s.submitResult, s.submitErr
}

func (s *erpStub) Ping(ctx context.Context) (*onec.PingResult, error) {
	return &onec.PingResult{StatusCode: 200}, nil
}

// repoStub заглушка репозитория заявок
type repoStub struct {
	booking    *domain.Booking
	getErr     error
	markErr    error
	markedID   int64
	markedInfo *domain.SyncInfo
}

func (r *repoStub) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.booking, r.getErr
}

func (r *repoStub) MarkSynced(ctx context.Context, id int64, info domain.SyncInfo) error {
	r.markedID = id
	r.markedInfo = &info
	return r.markErr
}

func testBooking() *domain.Booking {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            42,
		CustomerName:  "Иван Иванов",
		CustomerPhone: "+79991234567",
		CustomerEmail: "ivan@example.com",
		ServiceType:   "Диагностика",
		Promotion:     "Скидка на ТО",
		CarBrand:      "Toyota",
		CarModel:      "Camry",
		PreferredDate: &date,
		PreferredTime: "10:00",
		Comment:       "Стук в подвеске",
		Status:        domain.StatusNew,
	}
}

func TestSubmitBooking_Success(t *testing.T) {
	erp := &erpStub{
		client: &domain.Client{KontragentKey: "cp-1", Name: "Иван", LastName: "Иванов"},
		vehicle: &domain.Vehicle{
			Key: "car-1", VIN: "XTA210990Y2696785", Plate: "А123БВ154", Year: "2015",
		},
		marketingKey: "mp-1",
		repairKey:    "rt-1",
		submitResult: &onec.SubmitResult{StatusCode: 201, RefKey: "doc-1", Number: "000000042"},
	}
	repo := &repoStub{}
	svc := NewService(erp, repo, nopLogger{})

	result := svc.SubmitBooking(context.Background(), testBooking())

	require.True(t, result.Success)
	assert.Equal(t, "doc-1", result.DocumentRef)
	assert.Equal(t, "000000042", result.DocumentNumber)
	assert.Empty(t, result.Error)

	require.NotNil(t, erp.submitted)
	assert.Equal(t, "cp-1", erp.submitted.KontragentKey)
	assert.Equal(t, "rt-1", erp.submitted.RepairTypeKey)
	assert.Equal(t, "mp-1", erp.submitted.MarketingProgramKey)

	// Заявка помечена синхронизированной с ключами из 1С
	assert.Equal(t, int64(42), repo.markedID)
	require.NotNil(t, repo.markedInfo)
	require.NotNil(t, repo.markedInfo.KontragentKey)
	assert.Equal(t, "cp-1", *repo.markedInfo.KontragentKey)
	require.NotNil(t, repo.markedInfo.CarVIN)
	assert.Equal(t, "XTA210990Y2696785", *repo.markedInfo.CarVIN)
}

func TestSubmitBooking_ComposesDescription(t *testing.T) {
	erp := &erpStub{
		client:       &domain.Client{KontragentKey: "cp-1", LastName: "Иванов"},
		vehicle:      &domain.Vehicle{VIN: "VIN123", Plate: "А123БВ154"},
		submitResult: &onec.SubmitResult{StatusCode: 201},
	}
	svc := NewService(erp, &repoStub{}, nopLogger{})

	svc.SubmitBooking(context.Background(), testBooking())

	require.NotNil(t, erp.submitted)
	expected := "Телефон: +79991234567\n" +
		"Услуга: Диагностика\n" +
		"Акция: Скидка на ТО\n" +
		"Марка: Toyota\n" +
		"Модель: Camry\n" +
		"VIN: VIN123\n" +
		"Госномер: А123БВ154\n" +
		"Желаемая дата: 2025-06-15\n" +
		"Желаемое время: 10:00\n" +
		"Email: ivan@example.com\n" +
		"ID заявки сайта: 42\n" +
		"Комментарий: Стук в подвеске"
	assert.Equal(t, expected, erp.submitted.Description)
}

func TestSubmitBooking_RemoteRejected(t *testing.T) {
	erp := &erpStub{
		clientErr: onec.ErrCounterpartyNotFound,
		submitErr: fmt.Errorf("%w: status 500", onec.ErrRemoteRejected),
	}
	repo := &repoStub{}
	svc := NewService(erp, repo, nopLogger{})

	result := svc.SubmitBooking(context.Background(), testBooking())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "500")
	// Флаг синхронизации не выставлен
	assert.Zero(t, repo.markedID)
	assert.Nil(t, repo.markedInfo)
}

func TestSubmitBooking_NoCounterpartySubmitsWithoutKey(t *testing.T) {
	erp := &erpStub{
		clientErr:    onec.ErrCounterpartyNotFound,
		submitResult: &onec.SubmitResult{StatusCode: 201, RefKey: "doc-2"},
	}
	repo := &repoStub{}
	svc := NewService(erp, repo, nopLogger{})

	result := svc.SubmitBooking(context.Background(), testBooking())

	require.True(t, result.Success)
	require.NotNil(t, erp.submitted)
	assert.Empty(t, erp.submitted.KontragentKey)
	// Синхронизация фиксируется и без ключа контрагента
	assert.Equal(t, int64(42), repo.markedID)
	require.NotNil(t, repo.markedInfo)
	assert.Nil(t, repo.markedInfo.KontragentKey)
}

func TestSubmitBooking_ResolutionFailuresDoNotBlock(t *testing.T) {
	erp := &erpStub{
		clientErr:    onec.ErrUnavailable,
		marketingErr: onec.ErrUnavailable,
		repairErr:    onec.ErrUnavailable,
		submitResult: &onec.SubmitResult{StatusCode: 201},
	}
	svc := NewService(erp, &repoStub{}, nopLogger{})

	result := svc.SubmitBooking(context.Background(), testBooking())

	require.True(t, result.Success)
	require.NotNil(t, erp.submitted)
	assert.Empty(t, erp.submitted.KontragentKey)
	assert.Empty(t, erp.submitted.RepairTypeKey)
	assert.Empty(t, erp.submitted.MarketingProgramKey)
}

func TestSubmitBooking_NotConfigured(t *testing.T) {
	svc := NewService(nil, &repoStub{}, nopLogger{})

	result := svc.SubmitBooking(context.Background(), testBooking())

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestSubmitByID_NotFound(t *testing.T) {
	erp := &erpStub{}
	repo := &repoStub{getErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(erp, repo, nopLogger{})

	_, err := svc.SubmitByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestSubmitByID_Success(t *testing.T) {
	erp := &erpStub{
		clientErr:    onec.ErrCounterpartyNotFound,
		submitResult: &onec.SubmitResult{StatusCode: 200, RefKey: "doc-3"},
	}
	repo := &repoStub{booking: testBooking()}
	svc := NewService(erp, repo, nopLogger{})

	result, err := svc.SubmitByID(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "doc-3", result.DocumentRef)
}

func TestLookupClient_Found(t *testing.T) {
	erp := &erpStub{
		client:  &domain.Client{KontragentKey: "cp-1", Name: "Иван", LastName: "Иванов", Email: "ivan@example.com"},
		vehicle: &domain.Vehicle{Brand: "Toyota", Model: "Camry", VIN: "VIN123"},
	}
	svc := NewService(erp, &repoStub{}, nopLogger{})

	resp, err := svc.LookupClient(context.Background(), "+79991234567")
	require.NoError(t, err)
	require.True(t, resp.Found)
	require.NotNil(t, resp.Client)
	assert.Equal(t, "cp-1", resp.Client.KontragentKey)
	require.NotNil(t, resp.Vehicle)
	assert.Equal(t, "Toyota", resp.Vehicle.Brand)
}

func TestLookupClient_NotFound(t *testing.T) {
	erp := &erpStub{clientErr: onec.ErrCounterpartyNotFound}
	svc := NewService(erp, &repoStub{}, nopLogger{})

	resp, err := svc.LookupClient(context.Background(), "+79991234567")
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.Client)
}

func TestLookupClient_Unavailable(t *testing.T) {
	erp := &erpStub{clientErr: fmt.Errorf("%w: connection refused", onec.ErrUnavailable)}
	svc := NewService(erp, &repoStub{}, nopLogger{})

	resp, err := svc.LookupClient(context.Background(), "+79991234567")
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.NotEmpty(t, resp.Error)
}

func TestLookupClient_NotConfigured(t *testing.T) {
	svc := NewService(nil, &repoStub{}, nopLogger{})

	_, err := svc.LookupClient(context.Background(), "+79991234567")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
