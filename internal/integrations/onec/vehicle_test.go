package onec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVehicle_ZeroKeyNoRequests(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	c := ts.client()

	for _, key := range []string{"", zeroGUID} {
		vehicle, err := c.ResolveVehicle(context.Background(), key)
		require.NoError(t, err)
		assert.Nil(t, vehicle)
	}

	// Ни одного HTTP запроса для пустых ссылок
	assert.Zero(t, ts.count("/Catalog_Автомобили"))
	assert.Zero(t, ts.count("unmatched"))
}

func TestResolveVehicle_Full(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleJSON("/Catalog_Автомобили(guid'v-1')", `{
		"Ref_Key":"v-1",
		"НаименованиеПолное":"Toyota Prius Иванов",
		"VIN":"JTDKB20U103031234",
		"НомерГаражный":"А123ВС24",
		"ГодВыпуска":2015,
		"Марка_Key":"brand-1",
		"Модель_Key":"model-1"
	}`)
	ts.handleJSON("/Catalog_МаркиАвтомобилей(guid'brand-1')", `{"Ref_Key":"brand-1","Description":"Toyota"}`)
	ts.handleJSON("/Catalog_МоделиАвтомобилей(guid'model-1')", `{"Ref_Key":"model-1","Description":"Prius"}`)

	vehicle, err := ts.client().ResolveVehicle(context.Background(), "v-1")
	require.NoError(t, err)
	require.NotNil(t, vehicle)

	assert.Equal(t, "v-1", vehicle.Key)
	assert.Equal(t, "Toyota Prius Иванов", vehicle.FullName)
	assert.Equal(t, "JTDKB20U103031234", vehicle.VIN)
	assert.Equal(t, "А123ВС24", vehicle.Plate)
	assert.Equal(t, "2015", vehicle.Year)
	assert.Equal(t, "Toyota", vehicle.Brand)
	assert.Equal(t, "Prius", vehicle.Model)
}

func TestResolveVehicle_FieldAliases(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	// VIN лежит в НомерКузова, госномер в ГосНомер, год строкой
	ts.handleJSON("/Catalog_Автомобили(guid'v-2')", `{
		"Ref_Key":"v-2",
		"Description":"Honda Fit",
		"НомерКузова":"GD1-1234567",
		"ГосНомер":"В456ЕК124",
		"ГодВыпуска":"2008 г."
	}`)

	vehicle, err := ts.client().ResolveVehicle(context.Background(), "v-2")
	require.NoError(t, err)

	assert.Equal(t, "GD1-1234567", vehicle.VIN)
	assert.Equal(t, "В456ЕК124", vehicle.Plate)
	assert.Equal(t, "2008", vehicle.Year)
	assert.Equal(t, "Honda Fit", vehicle.FullName)
	assert.Empty(t, vehicle.Brand)
	assert.Empty(t, vehicle.Model)
}

func TestResolveVehicle_SecondaryLookupFailureSwallowed(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleJSON("/Catalog_Автомобили(guid'v-3')", `{
		"Ref_Key":"v-3",
		"VIN":"XTA210990Y1234567",
		"Марка_Key":"brand-1",
		"Модель_Key":"model-1"
	}`)
	ts.handleStatus("/Catalog_МаркиАвтомобилей", 500)
	ts.handleJSON("/Catalog_МоделиАвтомобилей(guid'model-1')", `{"Description":"2109"}`)

	vehicle, err := ts.client().ResolveVehicle(context.Background(), "v-3")
	require.NoError(t, err)

	// Отказ марки не роняет резолв и не мешает модели
	assert.Empty(t, vehicle.Brand)
	assert.Equal(t, "2109", vehicle.Model)
	assert.Equal(t, "XTA210990Y1234567", vehicle.VIN)
}

func TestResolveVehicle_ZeroBrandModelRefsSkipped(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleJSON("/Catalog_Автомобили(guid'v-4')", `{
		"Ref_Key":"v-4",
		"VIN":"VF1234567890",
		"Марка_Key":"`+zeroGUID+`",
		"Модель_Key":"`+zeroGUID+`"
	}`)

	vehicle, err := ts.client().ResolveVehicle(context.Background(), "v-4")
	require.NoError(t, err)
	assert.Empty(t, vehicle.Brand)
	assert.Empty(t, vehicle.Model)

	assert.Zero(t, ts.count("/Catalog_МаркиАвтомобилей"))
	assert.Zero(t, ts.count("/Catalog_МоделиАвтомобилей"))
}
