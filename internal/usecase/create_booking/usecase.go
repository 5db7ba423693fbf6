package create_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

// UseCase use case для создания заявки с сайта
type UseCase struct {
	bookingRepo BookingRepository
	erpSync     ERPSyncService
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// notifier может быть nil, если уведомления не настроены.
func NewUseCase(
	bookingRepo BookingRepository,
	erpSync ERPSyncService,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		erpSync:     erpSync,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute выполняет use case создания заявки.
// Заявка сначала сохраняется локально, затем передаётся в 1С и в Telegram.
// Сбой любой из интеграций не откатывает локальную запись: результат
// передачи в 1С возвращается в теле ответа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: name=%s, service=%s", req.Name, req.ServiceType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем заявку локально
	booking := &domain.Booking{
		CustomerName:  strings.TrimSpace(req.Name),
		CustomerPhone: strings.TrimSpace(req.Phone),
		CustomerEmail: strings.TrimSpace(req.Email),
		ServiceType:   req.ServiceType,
		Promotion:     req.Promotion,
		CarBrand:      req.CarBrand,
		CarModel:      req.CarModel,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Comment:       req.Comment,
		Status:        domain.StatusNew,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%d created", created.ID)

	// 3. Передаём заявку в 1С. Сбой не блокирует ответ клиенту.
	syncResult := uc.erpSync.SubmitBooking(ctx, created)

	// 4. Уведомление в Telegram. Ошибки отправки гасятся внутри клиента.
	if uc.notifier != nil {
		uc.notifier.NotifyNewBooking(ctx, created)
	}

	return &Response{
		ID:        created.ID,
		Status:    string(created.Status),
		CreatedAt: created.CreatedAt,
		Sync:      syncResult,
	}, nil
}
