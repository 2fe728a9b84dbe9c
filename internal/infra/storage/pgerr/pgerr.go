// Package pgerr классифицирует ошибки PostgreSQL для репозиториев
package pgerr

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

// Коды SQLSTATE
const (
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeExclusionViolation   = "23P01"
)

var (
	// ErrSerialization конкурентная транзакция изменила те же строки
	ErrSerialization = fmt.Errorf("%w: %w", domain.ErrStaleWrite, txmanager.ErrSerialization)

	// ErrExclusion нарушено ограничение исключения (пересечение интервалов мастера)
	ErrExclusion = &domain.ConflictError{Reason: domain.ConflictOverlapsAppointment}
)

// Code код SQLSTATE или пустая строка
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// Wrap оборачивает ошибку драйвера: конфликты сериализации и исключения
// получают свой вид, остальные оборачиваются в base
func Wrap(base error, op string, err error) error {
	switch Code(err) {
	case CodeSerializationFailure, CodeDeadlockDetected:
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	case CodeExclusionViolation:
		return fmt.Errorf("%w: %s: %v", ErrExclusion, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", base, op, err)
	}
}
