package get_availability

import (
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// Request модель запроса доступных времен
type Request struct {
	SalonID       int64         // ID салона
	StaffMemberID int64         // ID мастера
	ServiceID     int64         // ID услуги
	From          time.Time     // Первая дата диапазона
	To            time.Time     // Последняя дата диапазона (включительно)
	Origin        domain.Origin // Кто спрашивает: online или salon
}

// Response доступные времена начала по дням
type Response struct {
	StaffMemberID   int64
	ServiceID       int64
	DurationMinutes int
	StepMinutes     int
	From            time.Time
	To              time.Time
	Days            []domain.DayAvailability // только дни, где есть хотя бы одно время
}
