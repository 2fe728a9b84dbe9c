package quota

import (
	"context"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// AppointmentCounter считает записи, созданные за период
type AppointmentCounter interface {
	CountBillableCreated(ctx context.Context, salonID int64, from, to time.Time) (int, error)
}

// ActiveCounter считает активных мастеров или услуги салона
type ActiveCounter interface {
	CountActive(ctx context.Context, salonID int64) (int, error)
}

// LimitsProvider источник лимитов тарифа (сервис подписок)
type LimitsProvider interface {
	GetPlanLimits(ctx context.Context, salon *domain.Salon) (domain.PlanLimits, error)
}

// MetricsRecorder счётчик отказов по квоте
type MetricsRecorder interface {
	RecordQuotaRejection(limit string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
