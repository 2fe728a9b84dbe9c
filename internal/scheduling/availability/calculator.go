// Package availability перечисляет доступные для записи времена начала.
//
// Свободные подынтервалы дня получаются из рабочего окна мастера вычитанием
// перерывов и интервалов (с буферами) всех удерживающих записей. Внутри
// каждого подынтервала время начала t перебирается с шагом step; t подходит,
// если [t-bufferBefore, t+duration+bufferAfter) целиком лежит в подынтервале
// и начало попадает в окно предварительной записи услуги. Детектор
// конфликтов использует те же правила, поэтому любой выданный слот
// проходит проверку при записи (если его не занял конкурентный запрос).
package availability

import (
	"iter"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

// Calculator вычисляет доступные времена начала. Без состояния, безопасен
// для конкурентного использования.
type Calculator struct {
	stepMinutes int
}

// NewCalculator создает калькулятор с шагом перебора stepMinutes
func NewCalculator(stepMinutes int) *Calculator {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &Calculator{stepMinutes: stepMinutes}
}

// StepMinutes шаг перебора
func (c *Calculator) StepMinutes() int {
	return c.stepMinutes
}

// DayInput входные данные для одного дня
type DayInput struct {
	Staff        *domain.StaffMember
	Service      *domain.Service
	Date         time.Time
	Appointments []*domain.Appointment // записи мастера на дату; неудерживающие игнорируются
	Now          time.Time             // текущее время в зоне салона
	Location     *time.Location
}

// RangeInput входные данные для диапазона дат [From, To] включительно
type RangeInput struct {
	Staff        *domain.StaffMember
	Service      *domain.Service
	From         time.Time
	To           time.Time
	Appointments []*domain.Appointment // записи мастера за весь диапазон
	Now          time.Time
	Location     *time.Location
}

// FreeIntervals свободные подынтервалы дня по возрастанию
func FreeIntervals(staff *domain.StaffMember, date time.Time, appointments []*domain.Appointment) []domain.Interval {
	window, ok := domain.WorkingWindow(staff, date)
	if !ok {
		return nil
	}

	busy := domain.BreaksOn(staff, date)
	for _, a := range appointments {
		if !a.HoldsSlot() || a.StaffMemberID != staff.ID || !sameDate(a.Date, date) {
			continue
		}
		busy = append(busy, a.BufferedInterval())
	}

	return domain.Subtract(window, busy)
}

// StartTimes ленивая конечная последовательность доступных времён начала
// на один день по возрастанию. Последовательность можно обходить повторно.
func (c *Calculator) StartTimes(in DayInput) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		if in.Staff == nil || in.Service == nil || in.Service.DurationMinutes <= 0 {
			return
		}

		loc := in.Location
		if loc == nil {
			loc = time.UTC
		}

		before := in.Service.BufferBeforeMinutes
		tail := in.Service.DurationMinutes + in.Service.BufferAfterMinutes

		for _, free := range FreeIntervals(in.Staff, in.Date, in.Appointments) {
			for t := free.Start + before; t+tail <= free.End; t += c.stepMinutes {
				start, err := types.FromMinutes(t)
				if err != nil {
					continue
				}
				if !in.Service.WithinBookingWindow(start.On(in.Date, loc), in.Now) {
					continue
				}
				if !yield(start) {
					return
				}
			}
		}
	}
}

// Range обходит даты от From до To включительно и для каждой выдаёт
// доступные времена начала тем же алгоритмом, что и StartTimes
func (c *Calculator) Range(in RangeInput) iter.Seq2[time.Time, types.TimeString] {
	return func(yield func(time.Time, types.TimeString) bool) {
		byDate := groupByDate(in.Appointments)

		for date := domain.DateOnly(in.From); !date.After(domain.DateOnly(in.To)); date = date.AddDate(0, 0, 1) {
			day := DayInput{
				Staff:        in.Staff,
				Service:      in.Service,
				Date:         date,
				Appointments: byDate[date],
				Now:          in.Now,
				Location:     in.Location,
			}
			for start := range c.StartTimes(day) {
				if !yield(date, start) {
					return
				}
			}
		}
	}
}

// Collect собирает результат Range по дням, пропуская дни без слотов
func Collect(seq iter.Seq2[time.Time, types.TimeString]) []domain.DayAvailability {
	var days []domain.DayAvailability
	for date, start := range seq {
		if n := len(days); n > 0 && days[n-1].Date.Equal(date) {
			days[n-1].StartTimes = append(days[n-1].StartTimes, start)
			continue
		}
		days = append(days, domain.DayAvailability{Date: date, StartTimes: []types.TimeString{start}})
	}
	return days
}

func groupByDate(appointments []*domain.Appointment) map[time.Time][]*domain.Appointment {
	byDate := make(map[time.Time][]*domain.Appointment)
	for _, a := range appointments {
		d := domain.DateOnly(a.Date)
		byDate[d] = append(byDate[d], a)
	}
	return byDate
}

func sameDate(a, b time.Time) bool {
	return domain.DateOnly(a).Equal(domain.DateOnly(b))
}
