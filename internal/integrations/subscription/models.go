package subscription

// Subscription ответ сервиса подписок
type Subscription struct {
	SalonID int64  `json:"salonId"`
	Plan    string `json:"plan"`
	Limits  Limits `json:"limits"`
}

// Limits лимиты тарифа; 0 = без ограничения
type Limits struct {
	MaxAppointmentsPerMonth int `json:"maxAppointmentsPerMonth"`
	MaxStaff                int `json:"maxStaff"`
	MaxServices             int `json:"maxServices"`
}
