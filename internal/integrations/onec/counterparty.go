package onec

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

// FindCounterpartyByPhone ищет контрагента в 1С по номеру телефона.
//
// Контактная информация выгружается целиком ($top=2000, серверной фильтрации
// по телефону у этой выгрузки нет) и сканируется линейно: выигрывает первая
// запись, чей телефонный хвост совпал. Возвращает:
//   - (клиент, nil) при совпадении;
//   - (nil, ErrCounterpartyNotFound) когда совпадений нет;
//   - (nil, ErrUnavailable...) при сетевой ошибке — различимо для вызывающего.
func (c *Client) FindCounterpartyByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	digits := NormalizePhone(phone)
	if digits == "" {
		return nil, ErrCounterpartyNotFound
	}
	searchTail := PhoneTail(digits, phoneTailLen)

	query := url.Values{}
	query.Set("$top", strconv.Itoa(contactInfoTop))

	var feed collection[contactInfoRow]
	if err := c.getJSON(ctx, entityContactInfo, query, contactInfoTimeout, &feed); err != nil {
		c.log.Error("onec: contact info fetch failed for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("counterparty lookup: %w", err)
	}

	var key string
	for _, item := range feed.Value {
		itemTail := PhoneTail(NormalizePhone(item.Presentation), phoneTailLen)
		if itemTail != "" && itemTail == searchTail {
			key = item.counterpartyKey()
			c.log.Info("onec: counterparty found for phone=%s: key=%s (%q)", phone, key, item.Presentation)
			break
		}
	}

	if key == "" {
		c.log.Info("onec: counterparty for phone=%s (%s) not found among %d records", phone, searchTail, len(feed.Value))
		return nil, ErrCounterpartyNotFound
	}

	client := &domain.Client{KontragentKey: key}

	// Карточка контрагента (ФИО, email) — обогащение: её недоступность
	// не отменяет найденный ключ
	var record counterpartyRecord
	if err := c.getJSON(ctx, entityPath(entityCounterparties, key), nil, entityTimeout, &record); err != nil {
		c.log.Warn("onec: failed to fetch counterparty card key=%s: %v", key, err)
		return client, nil
	}

	client.Name = record.fullName()
	client.LastName = record.LastName
	client.Email = record.email()

	return client, nil
}
