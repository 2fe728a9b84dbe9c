package quota

import (
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	// ErrLimitsUnavailable не удалось получить лимиты тарифа
	ErrLimitsUnavailable = fmt.Errorf("%w: quota: plan limits unavailable", domain.ErrUnavailable)

	// ErrCountUsage не удалось посчитать использование
	ErrCountUsage = fmt.Errorf("%w: quota: failed to count usage", domain.ErrUnavailable)
)
