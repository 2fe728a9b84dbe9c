package reschedule_appointment

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: reschedule_appointment: invalid input data", domain.ErrValidation)

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = fmt.Errorf("%w: reschedule_appointment: salon", domain.ErrNotFound)

	// ErrAppointmentNotFound возвращается, когда запись не найдена в салоне
	ErrAppointmentNotFound = fmt.Errorf("%w: reschedule_appointment: appointment", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = fmt.Errorf("%w: reschedule_appointment: staff member", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга записи удалена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: reschedule_appointment: service", domain.ErrNotFound)

	// ErrVersionConflict версия записи не совпала с ожидаемой клиентом
	ErrVersionConflict = fmt.Errorf("%w: reschedule_appointment: appointment was modified", domain.ErrStaleWrite)

	// ErrStaleWrite возвращается, когда конкурентная запись не ушла и после повтора
	ErrStaleWrite = fmt.Errorf("%w: reschedule_appointment: concurrent modification", domain.ErrStaleWrite)

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = fmt.Errorf("%w: reschedule_appointment", domain.ErrUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)

// isStaleWrite true для конкурентных изменений, которые имеет смысл повторить.
// Несовпадение версии, указанной клиентом, повтором не исправить.
func isStaleWrite(err error) bool {
	if errors.Is(err, ErrVersionConflict) {
		return false
	}
	return errors.Is(err, domain.ErrStaleWrite) || errors.Is(err, txmanager.ErrSerialization)
}

func finalError(err error) error {
	switch {
	case errors.Is(err, ErrVersionConflict):
		return err
	case isStaleWrite(err):
		return fmt.Errorf("%w: %v", ErrStaleWrite, err)
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrQuotaExceeded),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnavailable):
		return err
	case errors.Is(err, txmanager.ErrTransaction):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
