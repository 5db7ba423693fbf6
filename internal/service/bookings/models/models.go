package models

import (
	"errors"
	"time"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка заявок
type ListBookingsRequest struct {
	Status       *string    `json:"status,omitempty"`       // Фильтр по статусу (опционально)
	StartDate    *time.Time `json:"startDate,omitempty"`    // Начало периода по дате создания (опционально)
	EndDate      *time.Time `json:"endDate,omitempty"`      // Конец периода по дате создания (опционально)
	OnlyUnsynced bool       `json:"onlyUnsynced,omitempty"` // Только непереданные в 1С
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		OnlyUnsynced: r.OnlyUnsynced,
	}

	if r.Status != nil {
		status, ok := domain.ValidStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса заявки
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PurgeBookingsRequest запрос на удаление заявок за период
type PurgeBookingsRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Response модели

// BookingResponse ответ с данными заявки
type BookingResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	ServiceType   string `json:"serviceType,omitempty"`
	Promotion     string `json:"promotion,omitempty"`
	CarBrand      string `json:"carBrand,omitempty"`
	CarModel      string `json:"carModel,omitempty"`
	PreferredDate string `json:"preferredDate,omitempty"` // "2025-10-15"
	PreferredTime string `json:"preferredTime,omitempty"` // "10:00"
	Comment       string `json:"comment,omitempty"`
	Status        string `json:"status"`

	// Состояние синхронизации с 1С
	SyncedTo1C    bool    `json:"syncedTo1C"`
	SyncedTo1CAt  *string `json:"syncedTo1CAt,omitempty"` // ISO 8601 format
	KontragentKey *string `json:"kontragentKey,omitempty"`
	AvtomobilKey  *string `json:"avtomobilKey,omitempty"`
	CarVIN        *string `json:"carVin,omitempty"`
	CarPlate      *string `json:"carPlate,omitempty"`
	CarYear       *string `json:"carYear,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком заявок
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		ServiceType:   b.ServiceType,
		Promotion:     b.Promotion,
		CarBrand:      b.CarBrand,
		CarModel:      b.CarModel,
		PreferredTime: b.PreferredTime,
		Comment:       b.Comment,
		Status:        string(b.Status),
		SyncedTo1C:    b.SyncedTo1C,
		KontragentKey: b.KontragentKey,
		AvtomobilKey:  b.AvtomobilKey,
		CarVIN:        b.CarVIN,
		CarPlate:      b.CarPlate,
		CarYear:       b.CarYear,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.PreferredDate != nil {
		resp.PreferredDate = b.PreferredDate.Format(domain.DateFormat)
	}
	if b.SyncedTo1CAt != nil {
		syncedStr := b.SyncedTo1CAt.Format(time.RFC3339)
		resp.SyncedTo1CAt = &syncedStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
