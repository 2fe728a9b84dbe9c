package conflict

import (
	"context"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// AppointmentRepository источник удерживающих записей мастера.
// Внутри транзакции реализация блокирует возвращаемые строки.
type AppointmentRepository interface {
	ListHoldingByStaff(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// MetricsRecorder счётчик конфликтов
type MetricsRecorder interface {
	RecordConflict(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
