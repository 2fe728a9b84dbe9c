package domain

import "time"

// Client клиент салона. Для ядра планирования важен только идентификатор;
// предпочтения уведомлений обрабатывает сервис уведомлений.
type Client struct {
	ID        int64
	SalonID   int64
	Name      string
	Phone     *string
	Email     *string
	CreatedAt time.Time
}
