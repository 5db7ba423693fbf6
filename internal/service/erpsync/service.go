package erpsync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hybrid24/H24-BookingService/internal/domain"
	bookingRepo "github.com/hybrid24/H24-BookingService/internal/infra/storage/booking"
	"github.com/hybrid24/H24-BookingService/internal/integrations/onec"
	"github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
	"github.com/hybrid24/H24-BookingService/pkg/ptr"
)

// maxErrorDetail ограничение длины диагностики в теле ответа
const maxErrorDetail = 500

// Service сервис синхронизации заявок с 1С
type Service struct {
	erp         ERPClient
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса синхронизации.
// erp может быть nil, если интеграция с 1С не настроена.
func NewService(erp ERPClient, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		erp:         erp,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Enabled сообщает, настроена ли интеграция с 1С
func (s *Service) Enabled() bool {
	return s.erp != nil
}

// LookupClient ищет клиента в 1С по номеру телефона и подбирает его автомобиль.
// Отсутствие клиента и сбой интеграции возвращаются в теле ответа, не ошибкой.
func (s *Service) LookupClient(ctx context.Context, phone string) (*models.ClientLookupResponse, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	s.logger.Info("LookupClient: looking up client by phone")

	client, err := s.erp.FindCounterpartyByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, onec.ErrCounterpartyNotFound) {
			s.logger.Info("LookupClient: no counterparty found")
			return &models.ClientLookupResponse{Found: false}, nil
		}
		s.logger.Error("LookupClient: 1C lookup failed: %v", err)
		return &models.ClientLookupResponse{
			Found: false,
			Error: truncate(err.Error(), maxErrorDetail),
		}, nil
	}

	vehicle := s.erp.DiscoverVehicle(ctx, client)

	s.logger.Info("LookupClient: found counterparty key=%s, vehicle=%v", client.KontragentKey, vehicle != nil)
	return &models.ClientLookupResponse{
		Found:   true,
		Client:  models.FromDomainClient(client),
		Vehicle: models.FromDomainVehicle(vehicle),
	}, nil
}

// SubmitBooking передаёт заявку в 1С документом ЗаявкаНаРемонт.
// Перед отправкой заново резолвит контрагента по телефону: данные формы
// могли устареть между lookup и созданием заявки. Все сбои резолва
// не блокируют отправку, а лишь оставляют соответствующие поля пустыми.
// При успехе (200/201) заявка помечается синхронизированной.
func (s *Service) SubmitBooking(ctx context.Context, booking *domain.Booking) *models.SyncResult {
	if !s.Enabled() {
		return &models.SyncResult{Success: false, Error: "1C integration is not configured"}
	}

	s.logger.Info("SubmitBooking: submitting booking id=%d to 1C", booking.ID)

	var kontragentKey string
	var vehicle *domain.Vehicle

	client, err := s.erp.FindCounterpartyByPhone(ctx, booking.CustomerPhone)
	switch {
	case err == nil:
		kontragentKey = client.KontragentKey
		vehicle = s.erp.DiscoverVehicle(ctx, client)
	case errors.Is(err, onec.ErrCounterpartyNotFound):
		s.logger.Info("SubmitBooking: no counterparty for booking id=%d, submitting without key", booking.ID)
	default:
		s.logger.Warn("SubmitBooking: counterparty lookup failed for booking id=%d: %v", booking.ID, err)
	}

	var marketingKey string
	if booking.Promotion != "" {
		marketingKey, err = s.erp.FindMarketingProgramKey(ctx, booking.Promotion)
		if err != nil {
			s.logger.Warn("SubmitBooking: marketing program lookup failed for booking id=%d: %v", booking.ID, err)
			marketingKey = ""
		}
	}

	repairTypeKey, err := s.erp.FirstRepairTypeKey(ctx)
	if err != nil {
		s.logger.Warn("SubmitBooking: repair type lookup failed for booking id=%d: %v", booking.ID, err)
		repairTypeKey = ""
	}

	result, err := s.erp.SubmitRepairRequest(ctx, onec.RepairRequestDocument{
		ClientName:          booking.CustomerName,
		Phone:               booking.CustomerPhone,
		Email:               booking.CustomerEmail,
		Description:         composeDescription(booking, vehicle),
		KontragentKey:       kontragentKey,
		RepairTypeKey:       repairTypeKey,
		MarketingProgramKey: marketingKey,
	})
	if err != nil {
		s.logger.Error("SubmitBooking: submission failed for booking id=%d: %v", booking.ID, err)
		return &models.SyncResult{
			Success: false,
			Error:   truncate(err.Error(), maxErrorDetail),
		}
	}

	s.logger.Info("SubmitBooking: booking id=%d submitted, document ref=%s number=%s",
		booking.ID, result.RefKey, result.Number)

	s.markSynced(ctx, booking.ID, kontragentKey, vehicle)

	return &models.SyncResult{
		Success:        true,
		DocumentRef:    result.RefKey,
		DocumentNumber: result.Number,
	}
}

// SubmitByID перечитывает заявку из БД и передаёт её в 1С.
// Используется эндпоинтом повторной синхронизации.
func (s *Service) SubmitByID(ctx context.Context, bookingID int64) (*models.SyncResult, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("SubmitByID: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("SubmitByID: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: SubmitByID - repository error: %v", ErrInternal, err)
	}

	return s.SubmitBooking(ctx, booking), nil
}

// Ping проверяет доступность 1С
func (s *Service) Ping(ctx context.Context) (*onec.PingResult, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	return s.erp.Ping(ctx)
}

// markSynced фиксирует успешную передачу. Ошибка записи логируется:
// документ в 1С уже создан, локальный флаг будет выставлен при повторе.
func (s *Service) markSynced(ctx context.Context, bookingID int64, kontragentKey string, vehicle *domain.Vehicle) {
	info := domain.SyncInfo{}
	if kontragentKey != "" {
		info.KontragentKey = ptr.Ptr(kontragentKey)
	}
	if vehicle != nil {
		if vehicle.Key != "" {
			info.AvtomobilKey = ptr.Ptr(vehicle.Key)
		}
		if vehicle.VIN != "" {
			info.CarVIN = ptr.Ptr(vehicle.VIN)
		}
		if vehicle.Plate != "" {
			info.CarPlate = ptr.Ptr(vehicle.Plate)
		}
		if vehicle.Year != "" {
			info.CarYear = ptr.Ptr(vehicle.Year)
		}
	}

	if err := s.bookingRepo.MarkSynced(ctx, bookingID, info); err != nil {
		s.logger.Error("markSynced: failed to mark booking id=%d as synced: %v", bookingID, err)
	}
}

// composeDescription собирает текст причины обращения из полей заявки.
// Порядок строк фиксирован, пустые поля пропускаются.
func composeDescription(booking *domain.Booking, vehicle *domain.Vehicle) string {
	type line struct {
		label string
		value string
	}

	var vin, plate string
	if vehicle != nil {
		vin = vehicle.VIN
		plate = vehicle.Plate
	}

	var preferredDate string
	if booking.PreferredDate != nil {
		preferredDate = booking.PreferredDate.Format(domain.DateFormat)
	}

	lines := []line{
		{"Телефон", booking.CustomerPhone},
		{"Услуга", booking.ServiceType},
		{"Акция", booking.Promotion},
		{"Марка", booking.CarBrand},
		{"Модель", booking.CarModel},
		{"VIN", vin},
		{"Госномер", plate},
		{"Желаемая дата", preferredDate},
		{"Желаемое время", booking.PreferredTime},
		{"Email", booking.CustomerEmail},
		{"ID заявки сайта", strconv.FormatInt(booking.ID, 10)},
		{"Комментарий", booking.Comment},
	}

	var b strings.Builder
	for _, l := range lines {
		if l.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(l.label)
		b.WriteString(": ")
		b.WriteString(l.value)
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
