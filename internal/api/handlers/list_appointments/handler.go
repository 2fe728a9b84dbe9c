package list_appointments

import (
	"errors"
	"net/http"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/appointments"
)

const (
	msgMissingSalonID = "не указан салон"
	msgInvalidParams  = "некорректные параметры запроса"
	msgInvalidStatus  = "некорректный статус записи"
	msgUnavailable    = "сервис временно недоступен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: staffId, from, to, status, limit, offset (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	serviceReq, err := ToServiceRequest(salonID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /appointments - Invalid status filter: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidStatus)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /appointments - Invalid filter: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidParams)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("GET /appointments - Storage unavailable: error=%v", err)
			handlers.RespondDomainError(w, err, msgUnavailable)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved: salon_id=%d, count=%d", salonID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
