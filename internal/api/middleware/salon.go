package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// SalonIDHeader заголовок с идентификатором салона, выставляется шлюзом
const SalonIDHeader = "X-Salon-ID"

type contextKey string

const salonIDKey contextKey = "salonID"

// SalonScope извлекает салон из заголовка и кладёт его в контекст.
// Запросы без корректного заголовка отклоняются с 401
func SalonScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(SalonIDHeader)
		salonID, err := strconv.ParseInt(raw, 10, 64)
		if raw == "" || err != nil || salonID <= 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "отсутствует или некорректен заголовок " + SalonIDHeader,
				"code":  "unauthorized",
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSalonID(r.Context(), salonID)))
	})
}

// WithSalonID кладёт салон в контекст
func WithSalonID(ctx context.Context, salonID int64) context.Context {
	return context.WithValue(ctx, salonIDKey, salonID)
}

// GetSalonID салон текущего запроса
func GetSalonID(ctx context.Context) (int64, bool) {
	salonID, ok := ctx.Value(salonIDKey).(int64)
	return salonID, ok
}
