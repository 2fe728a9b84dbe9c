package create_service

import (
	"errors"
	"net/http"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/catalog"
)

const (
	msgMissingSalonID     = "не указан салон"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidService     = "некорректные параметры услуги"
	msgSalonNotFound      = "салон не найден"
	msgQuotaExceeded      = "достигнут лимит услуг по тарифу"
	msgUnavailable        = "сервис временно недоступен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("POST /services - Missing salon ID")
		handlers.RespondBadRequest(w, msgMissingSalonID)
		return
	}

	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err, msgInvalidRequestBody))
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(salonID))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid service: salon_id=%d, error=%v", salonID, err)
			handlers.RespondDomainError(w, err, msgInvalidService)

		case errors.Is(err, catalog.ErrSalonNotFound):
			h.logger.Warn("POST /services - Salon not found: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgSalonNotFound)

		case errors.Is(err, domain.ErrQuotaExceeded):
			h.logger.Warn("POST /services - Quota exceeded: salon_id=%d", salonID)
			handlers.RespondDomainError(w, err, msgQuotaExceeded)

		case errors.Is(err, domain.ErrUnavailable):
			h.logger.Error("POST /services - Storage unavailable: error=%v", err)
			handlers.RespondDomainError(w, err, msgUnavailable)

		default:
			h.logger.Error("POST /services - Failed to create service: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d, salon_id=%d", result.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
