package salon

import (
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
