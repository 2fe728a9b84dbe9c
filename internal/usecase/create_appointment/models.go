package create_appointment

import (
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	SalonID       int64            // ID салона (из заголовка шлюза)
	ClientID      int64            // ID клиента
	StaffMemberID int64            // ID мастера
	ServiceID     int64            // ID услуги
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Время начала (например, "10:00")
	Notes         *string          // Заметки (опционально)
	Origin        domain.Origin    // Источник: online или salon
}
