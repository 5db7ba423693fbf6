package onec

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

// Поиск автомобиля клиента по документам 1С.
//
// Ссылка на автомобиль в схеме 1С лежит в разных местах у разных типов
// документов, и ни один запрос не находит автомобиль для каждого клиента.
// Поэтому поиск — упорядоченная цепочка стратегий: от прямого скана
// справочника к обходу цепочки документов. Выигрывает первая стратегия,
// вернувшая непустой результат; ошибка стратегии гасится и цепочка
// переходит к следующей. Частичные результаты разных стратегий
// не объединяются.

// vehicleStrategy одна стратегия поиска автомобиля
type vehicleStrategy interface {
	name() string
	tryResolve(ctx context.Context, client *domain.Client) (*domain.Vehicle, error)
}

// DiscoverVehicle ищет наиболее релевантный автомобиль клиента,
// перебирая стратегии в порядке приоритета. Возвращает nil, если
// ни одна стратегия не дала результата.
func (c *Client) DiscoverVehicle(ctx context.Context, client *domain.Client) *domain.Vehicle {
	if client == nil || isZeroKey(client.KontragentKey) {
		return nil
	}

	for _, strategy := range c.strategies {
		vehicle, err := strategy.tryResolve(ctx, client)
		if err != nil {
			c.log.Warn("onec: vehicle strategy %s failed for key=%s: %v", strategy.name(), client.KontragentKey, err)
			continue
		}
		if !vehicle.IsEmpty() {
			c.log.Info("onec: vehicle found via strategy %s for key=%s: vin=%q plate=%q",
				strategy.name(), client.KontragentKey, vehicle.VIN, vehicle.Plate)
			return vehicle
		}
	}

	c.log.Info("onec: no vehicle found for counterparty key=%s", client.KontragentKey)
	return nil
}

// fetchWorkOrders выгружает заказ-наряды контрагента, свежие первыми
func (c *Client) fetchWorkOrders(ctx context.Context, counterpartyKey string) ([]workOrderRecord, error) {
	query := url.Values{}
	query.Set("$top", strconv.Itoa(workOrderTop))
	query.Set("$orderby", "Date desc")
	query.Set("$filter", fmt.Sprintf("Контрагент_Key eq guid'%s'", counterpartyKey))

	var feed collection[workOrderRecord]
	if err := c.getJSON(ctx, entityWorkOrders, query, workOrderTimeout, &feed); err != nil {
		return nil, err
	}
	return feed.Value, nil
}

// catalogStrategy стратегия 1: прямой скан Catalog_Автомобили.
// Привязка к клиенту в справочнике — только через фамилию в Description,
// поэтому без фамилии стратегия неприменима. Из кандидатов предпочитается
// первый с заполненным VIN.
type catalogStrategy struct {
	c *Client
}

func (s *catalogStrategy) name() string { return "catalog" }

func (s *catalogStrategy) tryResolve(ctx context.Context, client *domain.Client) (*domain.Vehicle, error) {
	lastName := strings.TrimSpace(client.LastName)
	if lastName == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("$top", strconv.Itoa(vehicleScanTop))
	query.Set("$filter", fmt.Sprintf("contains(Description,'%s') and DeletionMark eq false", lastName))

	var feed collection[vehicleRecord]
	if err := s.c.getJSON(ctx, entityVehicles, query, vehicleScanTimeout, &feed); err != nil {
		return nil, err
	}

	var best *vehicleRecord
	for i := range feed.Value {
		record := &feed.Value[i]
		if record.IsFolder {
			continue
		}
		if best == nil {
			best = record
		}
		if strings.TrimSpace(record.VIN) != "" {
			best = record
			break
		}
	}

	if best == nil {
		return nil, nil
	}
	return s.c.ResolveVehicle(ctx, best.RefKey)
}

// workOrderHeaderStrategy стратегия 2: шапки заказ-нарядов.
// VIN/госномер из шапки документа имеют приоритет; ссылка на автомобиль
// из шапки разворачивается через ResolveVehicle.
type workOrderHeaderStrategy struct {
	c *Client
}

func (s *workOrderHeaderStrategy) name() string { return "work_order_header" }

func (s *workOrderHeaderStrategy) tryResolve(ctx context.Context, client *domain.Client) (*domain.Vehicle, error) {
	orders, err := s.c.fetchWorkOrders(ctx, client.KontragentKey)
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		vin := strings.TrimSpace(order.VIN)
		plate := strings.TrimSpace(order.PlateNumber)
		hasRef := !isZeroKey(order.VehicleKey)

		if vin == "" && plate == "" && !hasRef {
			continue
		}

		vehicle := &domain.Vehicle{}
		if hasRef {
			resolved, err := s.c.ResolveVehicle(ctx, order.VehicleKey)
			if err != nil {
				s.c.log.Warn("onec: work order %s vehicle resolve failed: %v", order.RefKey, err)
			} else if resolved != nil {
				vehicle = resolved
			}
		}

		// Данные шапки документа надёжнее карточки
		if vin != "" {
			vehicle.VIN = vin
		}
		if plate != "" {
			vehicle.Plate = plate
		}

		if !vehicle.IsEmpty() {
			return vehicle, nil
		}
	}

	return nil, nil
}

// workOrderTablePartStrategy стратегия 3: табличные части заказ-нарядов.
// Когда в шапках ссылки нет, каждый документ перечитывается с развёрнутой
// табличной частью Автомобили; берётся первая валидная ссылка.
type workOrderTablePartStrategy struct {
	c *Client
}

func (s *workOrderTablePartStrategy) name() string { return "work_order_table_part" }

func (s *workOrderTablePartStrategy) tryResolve(ctx context.Context, client *domain.Client) (*domain.Vehicle, error) {
	orders, err := s.c.fetchWorkOrders(ctx, client.KontragentKey)
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		query := url.Values{}
		query.Set("$expand", "Автомобили")

		var expanded workOrderRecord
		if err := s.c.getJSON(ctx, entityPath(entityWorkOrders, order.RefKey), query, workOrderTimeout, &expanded); err != nil {
			s.c.log.Warn("onec: work order %s expand failed: %v", order.RefKey, err)
			continue
		}

		ref := expanded.vehicleRef()
		if ref == "" {
			continue
		}

		vehicle, err := s.c.ResolveVehicle(ctx, ref)
		if err != nil {
			s.c.log.Warn("onec: work order %s vehicle resolve failed: %v", order.RefKey, err)
			continue
		}
		if !vehicle.IsEmpty() {
			return vehicle, nil
		}
	}

	return nil, nil
}

// repairRequestStrategy стратегия 4: заявки на ремонт.
// Контрагент в этих документах лежит в одном из двух полей в зависимости
// от конфигурации — фильтры пробуются по очереди.
type repairRequestStrategy struct {
	c *Client
}

func (s *repairRequestStrategy) name() string { return "repair_request" }

func (s *repairRequestStrategy) tryResolve(ctx context.Context, client *domain.Client) (*domain.Vehicle, error) {
	for _, field := range []string{"Контрагент_Key", "Заказчик_Key"} {
		query := url.Values{}
		query.Set("$top", strconv.Itoa(repairReqTop))
		query.Set("$orderby", "Date desc")
		query.Set("$filter", fmt.Sprintf("%s eq guid'%s'", field, client.KontragentKey))

		var feed collection[repairRequestRecord]
		if err := s.c.getJSON(ctx, entityRepairRequests, query, workOrderTimeout, &feed); err != nil {
			s.c.log.Warn("onec: repair request fetch by %s failed: %v", field, err)
			continue
		}

		for _, doc := range feed.Value {
			vin := strings.TrimSpace(doc.VIN)
			plate := strings.TrimSpace(doc.PlateNumber)
			hasRef := !isZeroKey(doc.VehicleKey)

			if vin == "" && plate == "" && !hasRef {
				continue
			}

			vehicle := &domain.Vehicle{}
			if hasRef {
				resolved, err := s.c.ResolveVehicle(ctx, doc.VehicleKey)
				if err != nil {
					s.c.log.Warn("onec: repair request %s vehicle resolve failed: %v", doc.RefKey, err)
				} else if resolved != nil {
					vehicle = resolved
				}
			}
			if vin != "" {
				vehicle.VIN = vin
			}
			if plate != "" {
				vehicle.Plate = plate
			}

			if !vehicle.IsEmpty() {
				return vehicle, nil
			}
		}
	}

	return nil, nil
}

// consolidatedOrderStrategy стратегия 5, последний рубеж: обход цепочки
// заказ-наряд → сводный заказ-наряд → ссылка на автомобиль сводного документа.
type consolidatedOrderStrategy struct {
	c *Client
}

func (s *consolidatedOrderStrategy) name() string { return "consolidated_order" }

func (s *consolidatedOrderStrategy) tryResolve(ctx context.Context, client *domain.Client) (*domain.Vehicle, error) {
	orders, err := s.c.fetchWorkOrders(ctx, client.KontragentKey)
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		if isZeroKey(order.ConsolidatedKey) {
			continue
		}

		var consolidated consolidatedOrderRecord
		if err := s.c.getJSON(ctx, entityPath(entityConsolidatedOrders, order.ConsolidatedKey), nil, workOrderTimeout, &consolidated); err != nil {
			s.c.log.Warn("onec: consolidated order %s fetch failed: %v", order.ConsolidatedKey, err)
			continue
		}

		if isZeroKey(consolidated.VehicleKey) {
			continue
		}

		vehicle, err := s.c.ResolveVehicle(ctx, consolidated.VehicleKey)
		if err != nil {
			s.c.log.Warn("onec: consolidated order %s vehicle resolve failed: %v", order.ConsolidatedKey, err)
			continue
		}
		if !vehicle.IsEmpty() {
			return vehicle, nil
		}
	}

	return nil, nil
}
