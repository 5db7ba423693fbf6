package onec

import (
	"context"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

// ResolveVehicle разворачивает ссылку на автомобиль в полную карточку.
//
// Пустая или нулевая ссылка означает "автомобиля нет" — возвращается
// (nil, nil) без единого HTTP запроса. Вторичные справочники (марка, модель)
// разрешаются отдельными запросами; их недоступность оставляет поле пустым
// и никогда не роняет резолв целиком.
func (c *Client) ResolveVehicle(ctx context.Context, key string) (*domain.Vehicle, error) {
	if isZeroKey(key) {
		return nil, nil
	}

	var record vehicleRecord
	if err := c.getJSON(ctx, entityPath(entityVehicles, key), nil, entityTimeout, &record); err != nil {
		return nil, err
	}

	vehicle := record.toDomain()
	vehicle.Key = key

	if !isZeroKey(record.BrandKey) {
		var brand catalogItem
		if err := c.getJSON(ctx, entityPath(entityVehicleBrands, record.BrandKey), nil, secondaryTimeout, &brand); err != nil {
			c.log.Warn("onec: brand lookup failed for key=%s: %v", record.BrandKey, err)
		} else {
			vehicle.Brand = brand.Description
		}
	}

	if !isZeroKey(record.ModelKey) {
		var model catalogItem
		if err := c.getJSON(ctx, entityPath(entityVehicleModels, record.ModelKey), nil, secondaryTimeout, &model); err != nil {
			c.log.Warn("onec: model lookup failed for key=%s: %v", record.ModelKey, err)
		} else {
			vehicle.Model = model.Description
		}
	}

	return vehicle, nil
}
