package staff

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = fmt.Errorf("%w: staff.repository: staff member", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("staff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: staff.repository: failed to execute query", domain.ErrUnavailable)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: staff.repository: failed to scan row", domain.ErrUnavailable)

	// ErrSchedule возвращается при ошибке (де)сериализации расписания
	ErrSchedule = errors.New("staff.repository: invalid schedule payload")
)
