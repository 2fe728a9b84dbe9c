package delete_staff

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
	msgMissingSalonID   = "не указан салон"
	msgInvalidStaffID   = "некорректный ID мастера"
	msgInvalidForce     = "некорректное значение параметра force"
	msgStaffNotFound    = "мастер не найден"
	msgSalonNotFound    = "салон не найден"
	msgHasAppointments  = "у мастера есть предстоящие записи, используйте force=true для их отмены"
	msgConcurrentUpdate = "записи мастера изменились, повторите попытку"
	msgUnavailable      = "сервис временно недоступен"
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

// Handle DELETE /api/v1/staff/{staffId}
// Query params: force (опционально) - отменить предстоящие записи мастера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /staff/{id} - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /staff/{id} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	force := false
	if raw := r.URL.Query().Get("force"); raw != "" {
		if force, err = strconv.ParseBool(raw); err != nil {
			h.logger.Warn("DELETE /staff/{id} - Invalid force parameter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidForce)
			return
		}
	}

	result, err := h.service.Delete(r.Context(), salonID, staffID, force)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrStaffNotFound):
			h.logger.Warn("DELETE /staff/{id} - Staff member not found: staff_id=%d", staffID)
			handlers.RespondDomainError(w, err, msgStaffNotFound)

		case errors.Is(err, staff.ErrSalonNotFound):
			h.logger.Warn("DELETE /staff/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgSalonNotFound)

		case errors.Is(err, staff.ErrStaffHasAppointments):
			h.logger.Warn("DELETE /staff/{id} - Staff member has appointments: staff_id=%d", staffID)
			handlers.RespondDomainError(w, err, msgHasAppointments)

		case errors.Is(err, domain.ErrStaleWrite):
			h.logger.Warn("DELETE /staff/{id} - Concurrent update: staff_id=%d", staffID)
			handlers.RespondDomainError(w, err, msgConcurrentUpdate)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("DELETE /staff/{id} - Storage unavailable: error=%v", err)
			handlers.RespondDomainError(w, err, msgUnavailable)

		default:
			h.logger.Error("DELETE /staff/{id} - Failed to delete staff member: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff/{id} - Staff member deleted: staff_id=%d, cancelled=%d",
		staffID, len(result.CancelledAppointmentIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
