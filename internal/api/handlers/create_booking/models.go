package create_booking

import (
	"time"

	"github.com/hybrid24/H24-BookingService/internal/domain"
	erpsyncModels "github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
	createBooking "github.com/hybrid24/H24-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	ServiceType   string `json:"serviceType,omitempty"`
	Promotion     string `json:"promotion,omitempty"`
	CarBrand      string `json:"carBrand,omitempty"`
	CarModel      string `json:"carModel,omitempty"`
	PreferredDate string `json:"preferredDate,omitempty"` // "2025-10-15"
	PreferredTime string `json:"preferredTime,omitempty"` // "10:00"
	Comment       string `json:"comment,omitempty"`
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	ID        int64                     `json:"id"`
	Status    string                    `json:"status"`
	CreatedAt string                    `json:"createdAt"`
	Sync      *erpsyncModels.SyncResult `json:"sync,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	var preferredDate *time.Time
	if r.PreferredDate != "" {
		parsed, err := time.Parse(domain.DateFormat, r.PreferredDate)
		if err != nil {
			return nil, err
		}
		preferredDate = &parsed
	}

	return &createBooking.Request{
		Name:          r.Name,
		Phone:         r.Phone,
		Email:         r.Email,
		ServiceType:   r.ServiceType,
		Promotion:     r.Promotion,
		CarBrand:      r.CarBrand,
		CarModel:      r.CarModel,
		PreferredDate: preferredDate,
		PreferredTime: r.PreferredTime,
		Comment:       r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		ID:        resp.ID,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		Sync:      resp.Sync,
	}
}
