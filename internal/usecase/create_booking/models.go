package create_booking

import (
	"time"

	erpsyncModels "github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
)

// Request модель запроса на создание заявки
type Request struct {
	Name          string     // Имя клиента (обязательно)
	Phone         string     // Телефон клиента (обязательно)
	Email         string     // Email (опционально)
	ServiceType   string     // Желаемая услуга (опционально)
	Promotion     string     // Название акции свободным текстом (опционально)
	CarBrand      string     // Марка автомобиля (опционально)
	CarModel      string     // Модель автомобиля (опционально)
	PreferredDate *time.Time // Желаемая дата визита (опционально)
	PreferredTime string     // Желаемое время визита (опционально)
	Comment       string     // Комментарий (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID        int64                   // ID созданной заявки
	Status    string                  // Статус заявки
	CreatedAt time.Time               // Время создания
	Sync      *erpsyncModels.SyncResult // Результат передачи в 1С
}
