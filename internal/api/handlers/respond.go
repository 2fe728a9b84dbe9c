package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// RespondJSON пишет JSON ответ с кодом status
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с произвольным кодом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Code: "validation"})
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: message, Code: "not_found"})
}

func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternalError, Code: "internal"})
}

// RespondDomainError выбирает код ответа по виду ошибки ядра.
// message - текст для клиента; детали конфликта, лимита и перехода
// статуса попадают в details
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		RespondInternalError(w)
		return
	}

	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    domain.Kind(err),
		Details: details(err),
	})
}

// StatusFor HTTP код для ошибки
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrStaleWrite):
		return http.StatusConflict
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, txmanager.ErrTransaction):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func details(err error) map[string]any {
	var (
		conflictErr   *domain.ConflictError
		quotaErr      *domain.QuotaError
		transitionErr *domain.TransitionError
	)

	switch {
	case errors.As(err, &conflictErr):
		d := map[string]any{"reason": conflictErr.Reason}
		if conflictErr.ConflictingID != 0 {
			d["conflictingAppointmentId"] = conflictErr.ConflictingID
		}
		return d
	case errors.As(err, &quotaErr):
		return map[string]any{"limit": quotaErr.Limit, "current": quotaErr.Current, "max": quotaErr.Max}
	case errors.As(err, &transitionErr):
		d := map[string]any{"from": transitionErr.From, "to": transitionErr.To}
		if transitionErr.Reason != "" {
			d["reason"] = transitionErr.Reason
		}
		return d
	}
	return nil
}
