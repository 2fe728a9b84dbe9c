package get_availability

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_availability: invalid input data", domain.ErrValidation)

	// ErrRangeTooLong возвращается, когда запрошен слишком длинный диапазон дат
	ErrRangeTooLong = fmt.Errorf("%w: get_availability: date range is too long", domain.ErrValidation)

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = fmt.Errorf("%w: get_availability: salon", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = fmt.Errorf("%w: get_availability: staff member", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: get_availability: service", domain.ErrNotFound)

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = fmt.Errorf("%w: get_availability", domain.ErrUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
