package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	rescheduleAppointment "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/reschedule_appointment"
)

const (
	msgMissingSalonID       = "не указан салон"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgAppointmentNotFound  = "запись не найдена"
	msgSalonNotFound        = "салон не найден"
	msgStaffNotFound        = "мастер не найден"
	msgServiceNotFound      = "услуга записи больше недоступна"
	msgCannotReschedule     = "запись в текущем статусе нельзя перенести"
	msgQuotaExceeded        = "достигнут лимит записей по тарифу"
	msgVersionConflict      = "запись была изменена, обновите данные и повторите"
	msgUnavailable          = "сервис временно недоступен"
	msgInvalidInput         = "некорректные параметры переноса"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err, msgInvalidRequestBody))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(salonID, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *domain.ConflictError

		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondDomainError(w, err, msgAppointmentNotFound)

		case errors.Is(err, rescheduleAppointment.ErrSalonNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Salon not found: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgSalonNotFound)

		case errors.Is(err, rescheduleAppointment.ErrStaffNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Staff member not found: appointment_id=%d", appointmentID)
			handlers.RespondDomainError(w, err, msgStaffNotFound)

		case errors.Is(err, rescheduleAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondDomainError(w, err, msgServiceNotFound)

		case errors.As(err, &conflictErr):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot conflict: appointment_id=%d, reason=%s",
				appointmentID, conflictErr.Reason)
			handlers.RespondDomainError(w, err, handlers.ConflictMessage(conflictErr))

		case errors.Is(err, domain.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid transition: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondDomainError(w, err, msgCannotReschedule)

		case errors.Is(err, domain.ErrQuotaExceeded):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Quota exceeded: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgQuotaExceeded)

		case errors.Is(err, domain.ErrStaleWrite):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Version conflict: appointment_id=%d", appointmentID)
			handlers.RespondDomainError(w, err, msgVersionConflict)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("PATCH /appointments/{id}/reschedule - Storage unavailable: error=%v", err)
			handlers.RespondDomainError(w, err, msgUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled: original_id=%d, new_id=%d",
		result.Original.ID, result.Appointment.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
