package conflict

import (
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// ErrLoadAppointments ошибка чтения записей мастера
var ErrLoadAppointments = fmt.Errorf("%w: conflict: failed to load appointments", domain.ErrUnavailable)
