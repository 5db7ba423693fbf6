package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hybrid24/H24-BookingService/internal/domain"
)

const defaultAPIBase = "https://api.telegram.org"

// Client клиент для отправки уведомлений в Telegram Bot API
type Client struct {
	apiBase    string
	botToken   string
	chatID     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Telegram
func NewClient(botToken, chatID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		apiBase:  defaultAPIBase,
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NewClientWithBase создает клиента с нестандартным адресом API (для тестов)
func NewClientWithBase(apiBase, botToken, chatID string, timeout time.Duration, log Logger) *Client {
	c := NewClient(botToken, chatID, timeout, log)
	c.apiBase = strings.TrimRight(apiBase, "/")
	return c
}

// SendMessage отправляет текстовое сообщение в настроенный чат
func (c *Client) SendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.botToken)

	body, err := json.Marshal(sendMessageRequest{
		ChatID: c.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrSendFailed, resp.StatusCode, string(detail))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrSendFailed, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%w: %s", ErrSendFailed, apiResp.Description)
	}

	return nil
}

// NotifyNewBooking отправляет уведомление о новой заявке.
// Ошибки отправки логируются и не пробрасываются наверх:
// недоступность Telegram не должна ломать создание заявки.
func (c *Client) NotifyNewBooking(ctx context.Context, booking *domain.Booking) {
	var b strings.Builder
	b.WriteString("Новая заявка с сайта\n")
	fmt.Fprintf(&b, "Имя: %s\n", booking.CustomerName)
	fmt.Fprintf(&b, "Телефон: %s\n", booking.CustomerPhone)
	if booking.ServiceType != "" {
		fmt.Fprintf(&b, "Услуга: %s\n", booking.ServiceType)
	}
	if booking.CarBrand != "" || booking.CarModel != "" {
		fmt.Fprintf(&b, "Автомобиль: %s\n", strings.TrimSpace(booking.CarBrand+" "+booking.CarModel))
	}
	if booking.PreferredDate != nil {
		fmt.Fprintf(&b, "Желаемая дата: %s\n", booking.PreferredDate.Format(domain.DateFormat))
	}
	if booking.PreferredTime != "" {
		fmt.Fprintf(&b, "Желаемое время: %s\n", booking.PreferredTime)
	}
	fmt.Fprintf(&b, "ID заявки: %d", booking.ID)

	if err := c.SendMessage(ctx, b.String()); err != nil {
		c.log.Error("Failed to send telegram notification for booking %d: %v", booking.ID, err)
		return
	}
	c.log.Info("Telegram notification sent for booking %d", booking.ID)
}
