package models

import "github.com/hybrid24/H24-BookingService/internal/domain"

// ClientInfo данные клиента, найденного в 1С
type ClientInfo struct {
	Name          string `json:"name"`
	LastName      string `json:"lastName,omitempty"`
	Email         string `json:"email,omitempty"`
	KontragentKey string `json:"kontragentKey"`
}

// VehicleInfo данные автомобиля, найденного в 1С
type VehicleInfo struct {
	Key      string `json:"key,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Model    string `json:"model,omitempty"`
	VIN      string `json:"vin,omitempty"`
	Plate    string `json:"plate,omitempty"`
	Year     string `json:"year,omitempty"`
}

// ClientLookupResponse результат поиска клиента по телефону.
// Found=false с пустым Error означает "клиент не найден",
// Found=false с заполненным Error означает сбой интеграции.
type ClientLookupResponse struct {
	Found   bool         `json:"found"`
	Client  *ClientInfo  `json:"client,omitempty"`
	Vehicle *VehicleInfo `json:"vehicle,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SyncResult результат передачи заявки в 1С.
// Сбои интеграции не пробрасываются как ошибки HTTP:
// результат всегда возвращается в теле ответа.
type SyncResult struct {
	Success        bool   `json:"success"`
	DocumentRef    string `json:"documentRef,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	Error          string `json:"error,omitempty"`
}

// FromDomainClient конвертирует domain модель клиента в DTO
func FromDomainClient(c *domain.Client) *ClientInfo {
	if c == nil {
		return nil
	}
	return &ClientInfo{
		Name:          c.Name,
		LastName:      c.LastName,
		Email:         c.Email,
		KontragentKey: c.KontragentKey,
	}
}

// FromDomainVehicle конвертирует domain модель автомобиля в DTO
func FromDomainVehicle(v *domain.Vehicle) *VehicleInfo {
	if v == nil {
		return nil
	}
	return &VehicleInfo{
		Key:      v.Key,
		FullName: v.FullName,
		Brand:    v.Brand,
		Model:    v.Model,
		VIN:      v.VIN,
		Plate:    v.Plate,
		Year:     v.Year,
	}
}
