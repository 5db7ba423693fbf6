package onec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMarketingProgramKey_SubstringMatch(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleJSON("/Catalog_МаркетинговыеПрограммы", `{"value":[
		{"Ref_Key":"mp-1","Description":"Скидка на ТО"},
		{"Ref_Key":"mp-2","Description":"Летняя акция"}
	]}`)

	key, err := ts.client().FindMarketingProgramKey(context.Background(), "ТО")
	require.NoError(t, err)
	assert.Equal(t, "mp-1", key)
}

func TestFindMarketingProgramKey_ContainmentBothDirections(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleJSON("/Catalog_МаркетинговыеПрограммы", `{"value":[
		{"Ref_Key":"mp-2","Description":"Скидка 20%"}
	]}`)

	c := ts.client()

	// Описание содержится во входной строке
	key, err := c.FindMarketingProgramKey(context.Background(), "Акция: скидка 20% на диагностику")
	require.NoError(t, err)
	assert.Equal(t, "mp-2", key)

	// Регистр не учитывается
	key, err = c.FindMarketingProgramKey(context.Background(), "СКИДКА 20%")
	require.NoError(t, err)
	assert.Equal(t, "mp-2", key)
}

func TestFindMarketingProgramKey_NoMatch(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleJSON("/Catalog_МаркетинговыеПрограммы", `{"value":[]}`)

	key, err := ts.client().FindMarketingProgramKey(context.Background(), "Несуществующая акция")
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestFindMarketingProgramKey_EmptyInputNoRequest(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	key, err := ts.client().FindMarketingProgramKey(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, key)
	assert.Zero(t, ts.count("/Catalog_МаркетинговыеПрограммы"))
}

func TestFirstRepairTypeKey(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleJSON("/Catalog_ВидыРемонта", `{"value":[
		{"Ref_Key":"rt-1","Description":"Слесарный ремонт"}
	]}`)

	key, err := ts.client().FirstRepairTypeKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rt-1", key)
}

func TestFirstRepairTypeKey_EmptyCatalog(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleJSON("/Catalog_ВидыРемонта", `{"value":[]}`)

	key, err := ts.client().FirstRepairTypeKey(context.Background())
	require.NoError(t, err)
	assert.Empty(t, key)
}
