package appointment

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment.repository: appointment", domain.ErrNotFound)

	// ErrVersionMismatch запись изменена конкурентно (версия не совпала)
	ErrVersionMismatch = fmt.Errorf("%w: appointment.repository: version mismatch", domain.ErrStaleWrite)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: appointment.repository: failed to execute query", domain.ErrUnavailable)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: appointment.repository: failed to scan row", domain.ErrUnavailable)
)
