package delete_staff

import (
	"context"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff/models"
)

type StaffService interface {
	Delete(ctx context.Context, salonID, id int64, force bool) (*models.DeleteStaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
