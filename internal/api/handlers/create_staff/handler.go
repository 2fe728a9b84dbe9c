package create_staff

import (
	"errors"
	"net/http"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff"
)

const (
	msgMissingSalonID     = "не указан салон"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректные рабочие часы мастера"
	msgSalonNotFound      = "салон не найден"
	msgQuotaExceeded      = "достигнут лимит мастеров по тарифу"
	msgUnavailable        = "сервис временно недоступен"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("POST /staff - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	var req CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err, msgInvalidRequestBody))
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(salonID))
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("POST /staff - Invalid staff member: salon_id=%d, error=%v", salonID, err)
			handlers.RespondDomainError(w, err, msgInvalidSchedule)

		case errors.Is(err, staff.ErrSalonNotFound):
			h.logger.Warn("POST /staff - Salon not found: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgSalonNotFound)

		case errors.Is(err, domain.ErrQuotaExceeded):
			h.logger.Warn("POST /staff - Quota exceeded: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgQuotaExceeded)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("POST /staff - Storage unavailable: error=%v", err)
			handlers.RespondDomainError(w, err, msgUnavailable)

		default:
			h.logger.Error("POST /staff - Failed to create staff member: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff - Staff member created: staff_id=%d, salon_id=%d", result.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
