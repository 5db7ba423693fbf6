package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	erpsyncModels "github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
	createBooking "github.com/hybrid24/H24-BookingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseStub struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (u *useCaseStub) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	u.got = req
	return u.resp, u.err
}

func doRequest(t *testing.T, uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &useCaseStub{resp: &createBooking.Response{
		ID:     42,
		Status: "new",
		Sync:   &erpsyncModels.SyncResult{Success: true, DocumentRef: "doc-1"},
	}}

	rec := doRequest(t, uc, `{"name":"Иван Иванов","phone":"+79991234567","preferredDate":"2025-06-15"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	require.NotNil(t, resp.Sync)
	assert.True(t, resp.Sync.Success)

	require.NotNil(t, uc.got)
	require.NotNil(t, uc.got.PreferredDate)
	assert.Equal(t, "2025-06-15", uc.got.PreferredDate.Format("2006-01-02"))
}

func TestHandle_ERPFailureStill201(t *testing.T) {
	uc := &useCaseStub{resp: &createBooking.Response{
		ID:     42,
		Status: "new",
		Sync:   &erpsyncModels.SyncResult{Success: false, Error: "1C unavailable"},
	}}

	rec := doRequest(t, uc, `{"name":"Иван Иванов","phone":"+79991234567"}`)

	// Заявка создана, сбой передачи в 1С виден только в поле sync
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Sync)
	assert.False(t, resp.Sync.Success)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &useCaseStub{}, `{"name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDate(t *testing.T) {
	rec := doRequest(t, &useCaseStub{}, `{"name":"Иван","phone":"+7999","preferredDate":"15.06.2025"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ValidationError(t *testing.T) {
	uc := &useCaseStub{err: createBooking.ErrInvalidInput}
	rec := doRequest(t, uc, `{"name":"","phone":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
