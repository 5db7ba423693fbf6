package sync_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hybrid24/H24-BookingService/internal/service/erpsync"
	"github.com/hybrid24/H24-BookingService/internal/service/erpsync/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type serviceStub struct {
	result *models.SyncResult
	err    error
}

func (s *serviceStub) SubmitByID(ctx context.Context, bookingID int64) (*models.SyncResult, error) {
	return s.result, s.err
}

func doRequest(t *testing.T, svc ERPSyncService, bookingID string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/sync", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID+"/sync", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &serviceStub{result: &models.SyncResult{Success: true, DocumentRef: "doc-1"}}

	rec := doRequest(t, svc, "42")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SyncResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "doc-1", resp.DocumentRef)
}

func TestHandle_ERPFailureStillHTTP200(t *testing.T) {
	svc := &serviceStub{result: &models.SyncResult{Success: false, Error: "1C rejected the document"}}

	rec := doRequest(t, svc, "42")

	// Сбой интеграции не меняет статус HTTP
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SyncResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "rejected")
}

func TestHandle_NotFound(t *testing.T) {
	svc := &serviceStub{err: erpsync.ErrBookingNotFound}

	rec := doRequest(t, svc, "404")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InvalidID(t *testing.T) {
	rec := doRequest(t, &serviceStub{}, "abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_NotConfigured(t *testing.T) {
	svc := &serviceStub{err: erpsync.ErrNotConfigured}

	rec := doRequest(t, svc, "42")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
