package purge_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/hybrid24/H24-BookingService/internal/api/handlers"
	"github.com/hybrid24/H24-BookingService/internal/domain"
	"github.com/hybrid24/H24-BookingService/internal/service/bookings"
	"github.com/hybrid24/H24-BookingService/internal/service/bookings/models"
)

const (
	msgMissingRange     = "параметры from и to обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "некорректный период дат"
)

// PurgeResponse результат удаления заявок
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")
	if from == "" || to == "" {
		h.logger.Warn("DELETE /bookings - Missing from/to parameters")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	start, err := time.Parse(domain.DateFormat, from)
	if err != nil {
		h.logger.Warn("DELETE /bookings - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	end, err := time.Parse(domain.DateFormat, to)
	if err != nil {
		h.logger.Warn("DELETE /bookings - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	deleted, err := h.service.Purge(r.Context(), &models.PurgeBookingsRequest{
		StartDate: start,
		// Конец периода включительно
		EndDate: end.AddDate(0, 0, 1),
	})
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidDateRange) {
			h.logger.Warn("DELETE /bookings - Invalid date range: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		h.logger.Error("DELETE /bookings - Failed to purge bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /bookings - Purged %d bookings from %s to %s", deleted, from, to)
	handlers.RespondJSON(w, http.StatusOK, PurgeResponse{Deleted: deleted})
}
