package create_appointment

import (
	"errors"
	"net/http"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/appointments/models"
	createAppointment "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/create_appointment"
)

const (
	msgMissingSalonID     = "не указан салон"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSalonNotFound      = "салон не найден"
	msgClientNotFound     = "клиент не найден"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotBookable = "онлайн-запись на услугу отключена"
	msgQuotaExceeded      = "достигнут лимит записей по тарифу"
	msgConcurrentUpdate   = "время было занято параллельно, повторите попытку"
	msgUnavailable        = "сервис временно недоступен"
	msgInvalidInput       = "некорректные параметры записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err, msgInvalidRequestBody))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(salonID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
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
		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("POST /appointments - Salon not found: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: salon_id=%d, client_id=%d", salonID, req.ClientID)
			handlers.RespondDomainError(w, err, msgClientNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff member not found: salon_id=%d, staff_id=%d", salonID, req.StaffID)
			handlers.RespondDomainError(w, err, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: salon_id=%d, service_id=%d", salonID, req.ServiceID)
			handlers.RespondDomainError(w, err, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotBookable):
			h.logger.Warn("POST /appointments - Service not bookable online: salon_id=%d, service_id=%d", salonID, req.ServiceID)
			handlers.RespondDomainError(w, err, msgServiceNotBookable)

		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /appointments - Slot conflict: salon_id=%d, staff_id=%d, reason=%s",
				salonID, req.StaffID, conflictErr.Reason)
			handlers.RespondDomainError(w, err, handlers.ConflictMessage(conflictErr))

		case errors.Is(err, domain.ErrQuotaExceeded):
			h.logger.Warn("POST /appointments - Quota exceeded: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgQuotaExceeded)

		case errors.Is(err, domain.ErrStaleWrite):
			h.logger.Warn("POST /appointments - Concurrent update: salon_id=%d, staff_id=%d", salonID, req.StaffID)
			handlers.RespondDomainError(w, err, msgConcurrentUpdate)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("POST /appointments - Storage unavailable: salon_id=%d, error=%v", salonID, err)
			handlers.RespondDomainError(w, err, msgUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, salon_id=%d, staff_id=%d",
		result.ID, salonID, result.StaffMemberID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(result))
}

