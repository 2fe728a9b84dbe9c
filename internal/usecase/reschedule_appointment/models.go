package reschedule_appointment

import (
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	SalonID         int64            // ID салона
	AppointmentID   int64            // ID переносимой записи
	StaffMemberID   *int64           // Новый мастер; nil - тот же
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	ExpectedVersion *int64           // Версия записи, которую видел клиент (опционально)
}

// Response результат переноса
type Response struct {
	Appointment *domain.Appointment // новая запись в статусе scheduled
	Original    *domain.Appointment // исходная запись в статусе rescheduled
}
