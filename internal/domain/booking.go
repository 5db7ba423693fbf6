package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusNew       BookingStatus = "new"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking заявка на ремонт, оставленная через сайт
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ServiceType   string
	Promotion     string // Название акции свободным текстом
	CarBrand      string
	CarModel      string
	PreferredDate *time.Time
	PreferredTime string
	Comment       string
	Status        BookingStatus

	// Флаг синхронизации с 1С: переходит false→true ровно один раз
	// при первой успешной передаче документа
	SyncedTo1C   bool
	SyncedTo1CAt *time.Time

	// Ключи 1С, заполняемые при успешном резолве клиента/автомобиля
	KontragentKey *string
	AvtomobilKey  *string
	CarVIN        *string
	CarPlate      *string
	CarYear       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking has not been cancelled
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// BookingsFilter фильтр для выборки заявок
type BookingsFilter struct {
	Status       *BookingStatus // Фильтр по статусу (опционально)
	StartDate    *time.Time     // Начало периода по created_at (опционально)
	EndDate      *time.Time     // Конец периода по created_at (опционально)
	OnlyUnsynced bool           // Только заявки, не переданные в 1С
}

// SyncInfo данные, полученные из 1С при успешной синхронизации заявки.
// Nil-поля не изменяют сохранённые значения.
type SyncInfo struct {
	KontragentKey *string
	AvtomobilKey  *string
	CarVIN        *string
	CarPlate      *string
	CarYear       *string
}

// ValidStatus проверяет, что строка является допустимым статусом заявки
func ValidStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusNew, StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}
