package create_appointment

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/txmanager"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_appointment: invalid input data", domain.ErrValidation)

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = fmt.Errorf("%w: create_appointment: salon", domain.ErrNotFound)

	// ErrClientNotFound возвращается, когда клиент не найден в салоне
	ErrClientNotFound = fmt.Errorf("%w: create_appointment: client", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = fmt.Errorf("%w: create_appointment: staff member", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: create_appointment: service", domain.ErrNotFound)

	// ErrServiceNotBookable возвращается, когда онлайн-запись на услугу отключена
	ErrServiceNotBookable = fmt.Errorf("%w: create_appointment: service is not available for online booking", domain.ErrValidation)

	// ErrStaleWrite возвращается, когда конкурентная запись не ушла и после повтора
	ErrStaleWrite = fmt.Errorf("%w: create_appointment: concurrent modification", domain.ErrStaleWrite)

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = fmt.Errorf("%w: create_appointment", domain.ErrUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// isStaleWrite true для ошибок, после которых операцию можно повторить
func isStaleWrite(err error) bool {
	return errors.Is(err, domain.ErrStaleWrite) || errors.Is(err, txmanager.ErrSerialization)
}

// passThrough true для ошибок, которые уже несут вид и возвращаются как есть
func passThrough(err error) bool {
	return errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrQuotaExceeded) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrUnavailable) ||
		isStaleWrite(err)
}

// finalError приводит ошибку транзакции к виду, понятному вызывающему
func finalError(err error) error {
	switch {
	case isStaleWrite(err):
		return fmt.Errorf("%w: %v", ErrStaleWrite, err)
	case passThrough(err):
		return err
	case errors.Is(err, txmanager.ErrTransaction):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
