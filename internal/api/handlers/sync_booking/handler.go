package sync_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hybrid24/H24-BookingService/internal/api/handlers"
	"github.com/hybrid24/H24-BookingService/internal/service/erpsync"
)

const (
	msgInvalidBookingID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
	msgNotConfigured    = "интеграция с 1С не настроена"
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

// Handle POST /api/v1/bookings/{bookingId}/sync
// Результат передачи в 1С возвращается в теле ответа со статусом 200:
// сбой интеграции не является ошибкой HTTP.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/sync - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.SubmitByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, erpsync.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/sync - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, erpsync.ErrNotConfigured):
			h.logger.Error("POST /bookings/{id}/sync - 1C integration is not configured")
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)

		default:
			h.logger.Error("POST /bookings/{id}/sync - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/sync - Completed: booking_id=%d, success=%v", bookingID, result.Success)
	handlers.RespondJSON(w, http.StatusOK, result)
}
