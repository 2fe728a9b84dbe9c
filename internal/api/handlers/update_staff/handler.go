package update_staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff"
)

const (
	msgMissingSalonID     = "не указан салон"
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректные рабочие часы мастера"
	msgStaffNotFound      = "мастер не найден"
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

// Handle PUT /api/v1/staff/{staffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("PUT /staff/{id} - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err, msgInvalidRequestBody))
		return
	}

	result, err := h.service.Update(r.Context(), staffID, req.ToServiceRequest(salonID))
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/{id} - Staff member not found: staff_id=%d", staffID)
			handlers.RespondDomainError(w, err, msgStaffNotFound)

		case errors.Is(err, staff.ErrSalonNotFound):
			h.logger.Warn("PUT /staff/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgSalonNotFound)

		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id} - Invalid staff member: staff_id=%d, error=%v", staffID, err)
			handlers.RespondDomainError(w, err, msgInvalidSchedule)

		case errors.Is(err, domain.ErrQuotaExceeded):
			h.logger.Warn("PUT /staff/{id} - Quota exceeded: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgQuotaExceeded)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("PUT /staff/{id} - Storage unavailable: error=%v", err)
			handlers.RespondDomainError(w, err, msgUnavailable)

		default:
			h.logger.Error("PUT /staff/{id} - Failed to update staff member: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id} - Staff member updated: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
