package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSendMessage_OK(t *testing.T) {
	var received sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottoken-123/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClientWithBase(srv.URL, "token-123", "-1001", time.Second, nopLogger{})
	require.NoError(t, c.SendMessage(context.Background(), "Проверка связи"))

	assert.Equal(t, "-1001", received.ChatID)
	assert.Equal(t, "Проверка связи", received.Text)
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c := NewClientWithBase(srv.URL, "token-123", "-1001", time.Second, nopLogger{})
	err := c.SendMessage(context.Background(), "text")
	assert.ErrorIs(t, err, ErrSendFailed)
	assert.Contains(t, err.Error(), "400")
}

func TestNotifyNewBooking_ComposesMessage(t *testing.T) {
	var received sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	c := NewClientWithBase(srv.URL, "token-123", "-1001", time.Second, nopLogger{})
	c.NotifyNewBooking(context.Background(), &domain.Booking{
		ID:            42,
		CustomerName:  "Иван Иванов",
		CustomerPhone: "+79991234567",
		ServiceType:   "Диагностика",
		CarBrand:      "Toyota",
		CarModel:      "Camry",
		PreferredDate: &date,
		PreferredTime: "10:00",
	})

	assert.Contains(t, received.Text, "Иван Иванов")
	assert.Contains(t, received.Text, "+79991234567")
	assert.Contains(t, received.Text, "Toyota Camry")
	assert.Contains(t, received.Text, "2025-06-15")
	assert.Contains(t, received.Text, "ID заявки: 42")
}

func TestNotifyNewBooking_SendFailureSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close()

	c := NewClientWithBase(srv.URL, "token-123", "-1001", time.Second, nopLogger{})
	// Не должно паниковать и не возвращает ошибку
	c.NotifyNewBooking(context.Background(), &domain.Booking{ID: 1, CustomerName: "Иван", CustomerPhone: "+7999"})
}
