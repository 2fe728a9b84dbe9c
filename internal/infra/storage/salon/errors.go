package salon

import (
	"errors"
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = fmt.Errorf("%w: salon.repository: salon", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("salon.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: salon.repository: failed to scan row", domain.ErrUnavailable)
)
