package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	getAvailability "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/get_availability"
)

const (
	msgMissingSalonID  = "не указан салон"
	msgInvalidStaffID  = "некорректный ID мастера"
	msgInvalidParams   = "некорректные параметры запроса, ожидаются serviceId, from и to (YYYY-MM-DD)"
	msgInvalidRange    = "некорректный диапазон дат"
	msgRangeTooLong    = "слишком длинный диапазон дат"
	msgSalonNotFound   = "салон не найден"
	msgStaffNotFound   = "мастер не найден"
	msgServiceNotFound = "услуга не найдена"
	msgUnavailable     = "сервис временно недоступен"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/availability
// Query params: serviceId, from, to, source (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("GET /staff/{id}/availability - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonID, staffID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrRangeTooLong):
			h.logger.Warn("GET /staff/{id}/availability - Range too long: staff_id=%d", staffID)
			handlers.RespondDomainError(w, err, msgRangeTooLong)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/availability - Invalid range: staff_id=%d, error=%v", staffID, err)
			handlers.RespondDomainError(w, err, msgInvalidRange)

		case errors.Is(err, getAvailability.ErrSalonNotFound):
			h.logger.Warn("GET /staff/{id}/availability - Salon not found: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgSalonNotFound)

		case errors.Is(err, getAvailability.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/availability - Staff member not found: staff_id=%d", staffID)
			handlers.RespondDomainError(w, err, msgStaffNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /staff/{id}/availability - Service not found: service_id=%d", useCaseReq.ServiceID)
			handlers.RespondDomainError(w, err, msgServiceNotFound)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("GET /staff/{id}/availability - Storage unavailable: error=%v", err)
			handlers.RespondDomainError(w, err, msgUnavailable)

		default:
			h.logger.Error("GET /staff/{id}/availability - Failed to get availability: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/availability - Availability retrieved: staff_id=%d, service_id=%d, days=%d",
		staffID, useCaseReq.ServiceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
