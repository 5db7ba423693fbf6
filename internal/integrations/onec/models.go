package onec

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

// Сырые модели OData 1С. Схема 1С использует несколько имён для одного
// логического поля (VIN/НомерКузова, НомерГаражный/ГосНомер, ObjectId/Ref_Key) —
// выбор известного алиаса выполняется здесь, до выхода данных из этого слоя.

// collection обёртка списочного ответа OData
type collection[T any] struct {
	Value []T `json:"value"`
}

// contactInfoRow строка табличной части КонтактнаяИнформация.
// Представление — свободный текст (телефон или email), требует нормализации.
type contactInfoRow struct {
	Type         string `json:"Тип"`
	Presentation string `json:"Представление"`
	ObjectID     string `json:"ObjectId"`
	RefKey       string `json:"Ref_Key"`
}

// counterpartyKey возвращает ключ контрагента: ObjectId — это Ref_Key
// самого контрагента, Ref_Key строки используется как запасной вариант
func (r *contactInfoRow) counterpartyKey() string {
	if r.ObjectID != "" {
		return r.ObjectID
	}
	return r.RefKey
}

const contactTypeEmail = "АдресЭлектроннойПочты"

// counterpartyRecord запись Catalog_Контрагенты
type counterpartyRecord struct {
	RefKey      string           `json:"Ref_Key"`
	Description string           `json:"Description"`
	LastName    string           `json:"Фамилия"`
	FirstName   string           `json:"Имя"`
	MiddleName  string           `json:"Отчество"`
	ContactInfo []contactInfoRow `json:"КонтактнаяИнформация"`
}

// fullName собирает ФИО, при пустых частях откатывается на Description
func (r *counterpartyRecord) fullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.LastName, r.FirstName, r.MiddleName} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(r.Description)
	}
	return strings.Join(parts, " ")
}

// email возвращает первый email из контактной информации
func (r *counterpartyRecord) email() string {
	for _, ci := range r.ContactInfo {
		if ci.Type == contactTypeEmail {
			return ci.Presentation
		}
	}
	return ""
}

// vehicleRecord запись Catalog_Автомобили
type vehicleRecord struct {
	RefKey       string          `json:"Ref_Key"`
	Description  string          `json:"Description"`
	FullName     string          `json:"НаименованиеПолное"`
	VIN          string          `json:"VIN"`
	BodyNumber   string          `json:"НомерКузова"`
	GarageNumber string          `json:"НомерГаражный"`
	PlateNumber  string          `json:"ГосНомер"`
	Year         json.RawMessage `json:"ГодВыпуска"`
	BrandKey     string          `json:"Марка_Key"`
	ModelKey     string          `json:"Модель_Key"`
	IsFolder     bool            `json:"IsFolder"`
	DeletionMark bool            `json:"DeletionMark"`
}

// vin возвращает VIN из первого непустого известного поля
func (r *vehicleRecord) vin() string {
	return firstNonEmpty(r.VIN, r.BodyNumber)
}

// plate возвращает госномер из первого непустого известного поля
func (r *vehicleRecord) plate() string {
	return firstNonEmpty(r.GarageNumber, r.PlateNumber)
}

// year возвращает год выпуска: в разных конфигурациях поле бывает числом
// или строкой, значение защитно усекается до 4 символов
func (r *vehicleRecord) year() string {
	s := strings.Trim(strings.TrimSpace(string(r.Year)), `"`)
	if s == "" || s == "null" || s == "0" {
		return ""
	}
	if len(s) > 4 {
		s = s[:4]
	}
	return s
}

// toDomain конвертирует запись в доменную модель без марки/модели
// (они разрешаются отдельными запросами)
func (r *vehicleRecord) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		Key:      r.RefKey,
		FullName: strings.TrimSpace(firstNonEmpty(r.FullName, r.Description)),
		VIN:      strings.TrimSpace(r.vin()),
		Plate:    strings.TrimSpace(r.plate()),
		Year:     r.year(),
	}
}

// catalogItem запись справочника, от которой нужны только ключ и описание
// (марки, модели, виды ремонта, маркетинговые программы)
type catalogItem struct {
	RefKey      string `json:"Ref_Key"`
	Description string `json:"Description"`
}

// workOrderVehicleRow строка табличной части Автомобили документа ЗаказНаряд
type workOrderVehicleRow struct {
	VehicleKey string `json:"Автомобиль_Key"`
}

// workOrderRecord документ Document_ЗаказНаряд
type workOrderRecord struct {
	RefKey          string                `json:"Ref_Key"`
	Date            string                `json:"Date"`
	VIN             string                `json:"VIN"`
	PlateNumber     string                `json:"ГосНомер"`
	VehicleKey      string                `json:"Автомобиль_Key"`
	ConsolidatedKey string                `json:"СводныйЗаказНаряд_Key"`
	Vehicles        []workOrderVehicleRow `json:"Автомобили"`
}

// vehicleRef возвращает первую непустую ссылку на автомобиль:
// из шапки документа либо из табличной части
func (r *workOrderRecord) vehicleRef() string {
	if !isZeroKey(r.VehicleKey) {
		return r.VehicleKey
	}
	for _, row := range r.Vehicles {
		if !isZeroKey(row.VehicleKey) {
			return row.VehicleKey
		}
	}
	return ""
}

// repairRequestRecord документ Document_ЗаявкаНаРемонт.
// Контрагент в разных конфигурациях лежит в Контрагент_Key или Заказчик_Key.
type repairRequestRecord struct {
	RefKey      string `json:"Ref_Key"`
	VIN         string `json:"VIN"`
	PlateNumber string `json:"ГосНомер"`
	VehicleKey  string `json:"Автомобиль_Key"`
}

// consolidatedOrderRecord документ Document_СводныйЗаказНаряд
type consolidatedOrderRecord struct {
	RefKey     string `json:"Ref_Key"`
	VehicleKey string `json:"Автомобиль_Key"`
}

// submittedDocument ответ 1С на создание документа
type submittedDocument struct {
	RefKey string `json:"Ref_Key"`
	Number string `json:"Number"`
}

// repairRequestPayload исходящий документ Document_ЗаявкаНаРемонт.
// Ключ контрагента проставляется в два алиасных поля сразу —
// разные конфигурации 1С читают разные.
type repairRequestPayload struct {
	Date                string `json:"Date"`
	ClientName          string `json:"ОбращениеККлиенту"`
	PhoneString         string `json:"ПредставлениеТелефонаСтрокой"`
	EmailString         string `json:"АдресЭлектроннойПочтыСтрокой"`
	ReasonDescription   string `json:"ОписаниеПричиныОбращения"`
	Comment             string `json:"Комментарий"`
	KontragentKey       string `json:"Контрагент_Key,omitempty"`
	CustomerKey         string `json:"Заказчик_Key,omitempty"`
	RepairTypeKey       string `json:"ВидРемонта_Key,omitempty"`
	MarketingProgramKey string `json:"МаркетинговаяПрограмма_Key,omitempty"`
}

// isZeroKey проверяет "пустую" ссылку: отсутствующий ключ либо
// нулевой GUID, которым схема 1С обозначает "нет ссылки"
func isZeroKey(key string) bool {
	if key == "" {
		return true
	}
	u, err := uuid.Parse(key)
	return err == nil && u == uuid.Nil
}

// firstNonEmpty возвращает первый непустой (после TrimSpace) аргумент
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
