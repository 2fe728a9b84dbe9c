package staff

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = fmt.Errorf("%w: staff: staff member", domain.ErrNotFound)

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = fmt.Errorf("%w: staff: salon", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных данных мастера
	ErrInvalidInput = fmt.Errorf("%w: staff: invalid input data", domain.ErrValidation)

	// ErrStaffHasAppointments у мастера есть будущие записи, удаление без force запрещено
	ErrStaffHasAppointments = fmt.Errorf("%w: staff: staff member has upcoming appointments", domain.ErrConflict)

	// ErrUnavailable возвращается при недоступности хранилища
	ErrUnavailable = fmt.Errorf("%w: staff", domain.ErrUnavailable)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("staff: internal error")
)
