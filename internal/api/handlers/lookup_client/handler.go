package lookup_client

import (
	"errors"
	"net/http"

	"github.com/hybrid24/H24-BookingService/internal/api/handlers"
	"github.com/hybrid24/H24-BookingService/internal/service/erpsync"
)

const (
	msgMissingPhone  = "отсутствует параметр phone"
	msgNotConfigured = "интеграция с 1С не настроена"
)

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

// Handle GET /api/v1/clients/lookup?phone=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		h.logger.Warn("GET /clients/lookup - Missing phone parameter")
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	result, err := h.service.LookupClient(r.Context(), phone)
	if err != nil {
		if errors.Is(err, erpsync.ErrNotConfigured) {
			h.logger.Error("GET /clients/lookup - 1C integration is not configured")
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)
			return
		}
		h.logger.Error("GET /clients/lookup - Lookup failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/lookup - Lookup completed: found=%v", result.Found)
	handlers.RespondJSON(w, http.StatusOK, result)
}
