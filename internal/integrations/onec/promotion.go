package onec

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// FindMarketingProgramKey ищет маркетинговую программу по названию акции.
//
// Сопоставление нечёткое: равенство либо вхождение подстроки в любую сторону,
// без учёта регистра. При пересекающихся названиях выигрывает та программа,
// которую 1С вернула первой — неоднозначность принята как ограничение.
// Возвращает "" при отсутствии совпадений.
func (c *Client) FindMarketingProgramKey(ctx context.Context, promotionName string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(promotionName))
	if needle == "" {
		return "", nil
	}

	query := url.Values{}
	query.Set("$top", strconv.Itoa(promoTop))

	var feed collection[catalogItem]
	if err := c.getJSON(ctx, entityMarketingPrograms, query, entityTimeout, &feed); err != nil {
		return "", err
	}

	for _, item := range feed.Value {
		desc := strings.ToLower(strings.TrimSpace(item.Description))
		if desc == "" {
			continue
		}
		if desc == needle || strings.Contains(desc, needle) || strings.Contains(needle, desc) {
			c.log.Info("onec: marketing program for %q: key=%s (%q)", promotionName, item.RefKey, item.Description)
			return item.RefKey, nil
		}
	}

	c.log.Info("onec: marketing program %q not found among %d records", promotionName, len(feed.Value))
	return "", nil
}

// FirstRepairTypeKey возвращает первый доступный вид ремонта из справочника.
// Документу нужен любой валидный ключ вида ремонта, конкретное значение
// не несёт смысла.
func (c *Client) FirstRepairTypeKey(ctx context.Context) (string, error) {
	query := url.Values{}
	query.Set("$top", "1")

	var feed collection[catalogItem]
	if err := c.getJSON(ctx, entityRepairTypes, query, entityTimeout, &feed); err != nil {
		return "", err
	}

	if len(feed.Value) == 0 {
		return "", nil
	}

	c.log.Info("onec: repair type key=%s (%q)", feed.Value[0].RefKey, feed.Value[0].Description)
	return feed.Value[0].RefKey, nil
}
