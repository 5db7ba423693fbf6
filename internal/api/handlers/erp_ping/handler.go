package erp_ping

import (
	"errors"
	"net/http"

	"github.com/hybrid24/H24-BookingService/internal/api/handlers"
	"github.com/hybrid24/H24-BookingService/internal/service/erpsync"
)

const msgNotConfigured = "интеграция с 1С не настроена"

// maxEntitiesPreview ограничение списка entity set'ов в ответе
const maxEntitiesPreview = 20

// PingResponse результат проверки доступности 1С
type PingResponse struct {
	Reachable  bool     `json:"reachable"`
	StatusCode int      `json:"statusCode,omitempty"`
	Entities   []string `json:"entities,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type Handler struct {
	service ERPSyncService
	logger  Logger
}

func NewHandler(service ERPSyncService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/erp/ping
// Недоступность 1С возвращается в теле ответа со статусом 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Ping(r.Context())
	if err != nil {
		if errors.Is(err, erpsync.ErrNotConfigured) {
			h.logger.Error("GET /erp/ping - 1C integration is not configured")
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)
			return
		}
		h.logger.Warn("GET /erp/ping - 1C unreachable: %v", err)
		handlers.RespondJSON(w, http.StatusOK, PingResponse{
			Reachable: false,
			Error:     err.Error(),
		})
		return
	}

	entities := result.Entities
	if len(entities) > maxEntitiesPreview {
		entities = entities[:maxEntitiesPreview]
	}

	h.logger.Info("GET /erp/ping - 1C reachable, status=%d, %d entity sets", result.StatusCode, len(result.Entities))
	handlers.RespondJSON(w, http.StatusOK, PingResponse{
		Reachable:  result.StatusCode == http.StatusOK,
		StatusCode: result.StatusCode,
		Entities:   entities,
	})
}
