package appointments

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointments: appointment", domain.ErrNotFound)

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = fmt.Errorf("%w: appointments: salon", domain.ErrNotFound)

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = fmt.Errorf("%w: appointments: invalid appointment status", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: appointments: invalid input data", domain.ErrValidation)

	// ErrVersionConflict версия записи не совпала с ожидаемой клиентом
	ErrVersionConflict = fmt.Errorf("%w: appointments: appointment was modified", domain.ErrStaleWrite)

	// ErrStaleWrite конкурентное изменение не ушло и после повтора
	ErrStaleWrite = fmt.Errorf("%w: appointments: concurrent modification", domain.ErrStaleWrite)

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = fmt.Errorf("%w: appointments", domain.ErrUnavailable)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
