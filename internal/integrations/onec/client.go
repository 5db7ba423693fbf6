package onec

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Имена entity set'ов в схеме 1С
const (
	entityContactInfo        = "Catalog_Контрагенты_КонтактнаяИнформация"
	entityCounterparties     = "Catalog_Контрагенты"
	entityVehicles           = "Catalog_Автомобили"
	entityVehicleBrands      = "Catalog_МаркиАвтомобилей"
	entityVehicleModels      = "Catalog_МоделиАвтомобилей"
	entityMarketingPrograms  = "Catalog_МаркетинговыеПрограммы"
	entityRepairTypes        = "Catalog_ВидыРемонта"
	entityWorkOrders         = "Document_ЗаказНаряд"
	entityConsolidatedOrders = "Document_СводныйЗаказНаряд"
	entityRepairRequests     = "Document_ЗаявкаНаРемонт"
)

// Таймауты по точкам вызова — общая выборка контактов самая тяжёлая,
// вторичные справочники самые лёгкие
const (
	contactInfoTimeout = 15 * time.Second
	vehicleScanTimeout = 15 * time.Second
	entityTimeout      = 10 * time.Second
	workOrderTimeout   = 12 * time.Second
	secondaryTimeout   = 8 * time.Second
	documentTimeout    = 15 * time.Second
	pingTimeout        = 10 * time.Second
)

// Ограничения размеров выборок
const (
	contactInfoTop = 2000
	vehicleScanTop = 2000
	workOrderTop   = 50
	repairReqTop   = 50
	promoTop       = 500
)

// maxErrorDetail длина диагностики из тела ответа 1С в ошибках
const maxErrorDetail = 500

// Config параметры подключения клиента к 1С OData
type Config struct {
	BaseURL     string
	User        string // Учётная запись для чтения справочников
	Password    string
	DocUser     string // Учётная запись для операций с документами
	DocPassword string

	// Сертификат 1С самоподписанный, проверка TLS отключается конфигурацией
	InsecureSkipVerify bool
}

// Client клиент 1С OData
type Client struct {
	baseURL     string
	user        string
	password    string
	docUser     string
	docPassword string
	httpClient  *http.Client
	strategies  []vehicleStrategy
	log         Logger
}

// NewClient создает новый экземпляр клиента 1С
func NewClient(cfg Config, log Logger) *Client {
	transport := &http.Transport{}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		user:        cfg.User,
		password:    cfg.Password,
		docUser:     cfg.DocUser,
		docPassword: cfg.DocPassword,
		httpClient:  &http.Client{Transport: transport},
		log:         log,
	}

	// Порядок стратегий фиксирован: от прямого поиска по справочнику
	// к обходу цепочки документов (см. discovery.go)
	c.strategies = []vehicleStrategy{
		&catalogStrategy{c: c},
		&workOrderHeaderStrategy{c: c},
		&workOrderTablePartStrategy{c: c},
		&repairRequestStrategy{c: c},
		&consolidatedOrderStrategy{c: c},
	}

	return c
}

// entityPath формирует путь к конкретной записи: Entity(guid'...')
func entityPath(entity, key string) string {
	return fmt.Sprintf("%s(guid'%s')", entity, key)
}

// getJSON выполняет GET запрос к OData с собственным таймаутом
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, timeout time.Duration, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if query == nil {
		query = url.Values{}
	}
	query.Set("$format", "json")

	reqURL := c.baseURL + "/" + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorDetail))
		return fmt.Errorf("%w: %s returned status %d: %s", ErrInvalidResponse, path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response from %s: %v", ErrInvalidResponse, path, err)
	}

	return nil
}

// postJSON отправляет документ в OData под учётной записью для документов
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, documentTimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	reqURL := c.baseURL + "/" + path + "?$format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.SetBasicAuth(c.docUser, c.docPassword)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorDetail))
		return resp.StatusCode, fmt.Errorf("%w: status %d: %s", ErrRemoteRejected, resp.StatusCode, string(detail))
	}

	if out != nil {
		// Тело ответа успешного POST не у всех конфигураций валидный JSON —
		// ошибку парсинга не считаем ошибкой отправки
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Warn("onec: failed to decode document response from %s: %v", path, err)
		}
	}

	return resp.StatusCode, nil
}

// PingResult результат проверки доступности 1С
type PingResult struct {
	StatusCode int      `json:"statusCode"`
	Entities   []string `json:"entities,omitempty"`
}

// Ping проверяет доступность корня OData сервиса и возвращает
// список доступных entity set'ов
func (c *Client) Ping(ctx context.Context) (*PingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?$format=json", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	result := &PingResult{StatusCode: resp.StatusCode}

	var root struct {
		Value []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&root); err == nil {
		for _, e := range root.Value {
			result.Entities = append(result.Entities, firstNonEmpty(e.Name, e.URL))
		}
	}

	return result, nil
}

// truncate усекает диагностику до n байт
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
