package onec

import (
	"context"
	"time"
)

// RepairRequestDocument исходящая заявка на ремонт для 1С
type RepairRequestDocument struct {
	ClientName  string
	Phone       string
	Email       string
	Description string // Составное описание обращения (см. erpsync)

	// Ключи 1С, пустые значения не сериализуются
	KontragentKey       string
	RepairTypeKey       string
	MarketingProgramKey string
}

// SubmitResult результат создания документа в 1С
type SubmitResult struct {
	StatusCode int
	RefKey     string
	Number     string
}

// SubmitRepairRequest создает Document_ЗаявкаНаРемонт в 1С.
//
// Дата визита — серверное "сейчас". Ключ контрагента проставляется
// в оба алиасных поля. Не-2xx ответ возвращается как ErrRemoteRejected
// с усечённой диагностикой из тела ответа.
func (c *Client) SubmitRepairRequest(ctx context.Context, doc RepairRequestDocument) (*SubmitResult, error) {
	payload := repairRequestPayload{
		Date:                time.Now().Format("2006-01-02T15:04:05"),
		ClientName:          doc.ClientName,
		PhoneString:         doc.Phone,
		EmailString:         doc.Email,
		ReasonDescription:   doc.Description,
		Comment:             doc.Description,
		KontragentKey:       doc.KontragentKey,
		CustomerKey:         doc.KontragentKey,
		RepairTypeKey:       doc.RepairTypeKey,
		MarketingProgramKey: doc.MarketingProgramKey,
	}

	c.log.Info("onec: POST %s: client=%q kontragent=%s program=%s",
		entityRepairRequests, doc.ClientName, doc.KontragentKey, doc.MarketingProgramKey)

	var created submittedDocument
	status, err := c.postJSON(ctx, entityRepairRequests, payload, &created)
	if err != nil {
		return nil, err
	}

	c.log.Info("onec: document created: status=%d ref=%s number=%s", status, created.RefKey, created.Number)

	return &SubmitResult{
		StatusCode: status,
		RefKey:     created.RefKey,
		Number:     created.Number,
	}, nil
}
