package update_staff

import (
	"context"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff/models"
)

type StaffService interface {
	Update(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
