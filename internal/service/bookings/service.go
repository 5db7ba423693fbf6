package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/hybrid24/H24-BookingService/internal/domain"
	bookingRepo "github.com/hybrid24/H24-BookingService/internal/infra/storage/booking"
	"github.com/hybrid24/H24-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с заявками
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// List получает заявки с гибкой фильтрацией
// Поддерживает фильтрацию по статусу, периоду создания и флагу синхронизации с 1С
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, status=%v, onlyUnsynced=%v", req.Status, req.OnlyUnsynced)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// UpdateStatus обновляет статус заявки
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	status, ok := domain.ValidStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, status)
	return nil
}

// Purge удаляет заявки, созданные в указанном периоде.
// Возвращает количество удалённых заявок.
func (s *Service) Purge(ctx context.Context, req *models.PurgeBookingsRequest) (int64, error) {
	s.logger.Info("Purge: deleting bookings from %s to %s",
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))

	if req.EndDate.Before(req.StartDate) {
		s.logger.Warn("Purge: end date before start date")
		return 0, ErrInvalidDateRange
	}

	deleted, err := s.bookingRepo.DeleteByDateRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("Purge: repository error: %v", err)
		return 0, fmt.Errorf("%w: Purge - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Purge: deleted %d bookings", deleted)
	return deleted, nil
}
