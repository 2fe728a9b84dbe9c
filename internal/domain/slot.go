package domain

import (
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

// Slot кандидат (мастер, дата, время начала) для записи
type Slot struct {
	StaffMemberID int64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
}

// DayAvailability доступные времена начала на одну дату
type DayAvailability struct {
	Date       time.Time
	StartTimes []types.TimeString
}
