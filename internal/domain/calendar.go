package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/types"
)

// Interval полуоткрытый интервал [Start, End) в минутах от полуночи
// календарного дня салона. Границы могут выходить за сутки, если к
// записи у полуночи добавлены буферы.
type Interval struct {
	Start int
	End   int
}

// NewInterval строит интервал из времени начала и длительности
func NewInterval(start types.TimeString, durationMinutes int) Interval {
	s := start.Minutes()
	return Interval{Start: s, End: s + durationMinutes}
}

// Len длительность в минутах
func (i Interval) Len() int {
	if i.End <= i.Start {
		return 0
	}
	return i.End - i.Start
}

// IsEmpty true для интервала нулевой длины
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// Overlaps строгое пересечение полуоткрытых интервалов: стыковка не пересечение
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains true, если other целиком внутри i
func (i Interval) Contains(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}

// Expand расширяет интервал на before минут слева и after справа
func (i Interval) Expand(before, after int) Interval {
	return Interval{Start: i.Start - before, End: i.End + after}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", formatMinutes(i.Start), formatMinutes(i.End))
}

func formatMinutes(m int) string {
	if ts, err := types.FromMinutes(m); err == nil {
		return ts.String()
	}
	return fmt.Sprintf("%dm", m)
}

// Break перерыв внутри рабочего дня
type Break struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Interval перерыв как интервал
func (b Break) Interval() Interval {
	return Interval{Start: b.Start.Minutes(), End: b.End.Minutes()}
}

// DaySchedule правило рабочего времени на день недели
type DaySchedule struct {
	IsWorking bool             `json:"isWorking"`
	Start     types.TimeString `json:"start,omitempty"`
	End       types.TimeString `json:"end,omitempty"`
	Breaks    []Break          `json:"breaks,omitempty"`
}

// Window рабочее окно дня
func (d DaySchedule) Window() Interval {
	return Interval{Start: d.Start.Minutes(), End: d.End.Minutes()}
}

// Validate проверяет правило: начало раньше конца, перерывы строго
// внутри окна и не пересекаются между собой
func (d DaySchedule) Validate() error {
	if !d.IsWorking {
		return nil
	}
	if err := d.Start.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := d.End.Validate(); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if !d.Start.IsBefore(d.End) {
		return fmt.Errorf("start %s must be before end %s", d.Start, d.End)
	}
	if len(d.Breaks) > MaxBreaksPerDay {
		return fmt.Errorf("too many breaks: %d > %d", len(d.Breaks), MaxBreaksPerDay)
	}

	window := d.Window()
	breaks := make([]Interval, 0, len(d.Breaks))
	for _, b := range d.Breaks {
		if err := b.Start.Validate(); err != nil {
			return fmt.Errorf("break start: %w", err)
		}
		if err := b.End.Validate(); err != nil {
			return fmt.Errorf("break end: %w", err)
		}
		iv := b.Interval()
		if iv.IsEmpty() {
			return fmt.Errorf("break %s: start must be before end", iv)
		}
		if iv.Start <= window.Start || iv.End >= window.End {
			return fmt.Errorf("break %s must be strictly inside %s", iv, window)
		}
		breaks = append(breaks, iv)
	}

	sortIntervals(breaks)
	for i := 1; i < len(breaks); i++ {
		if breaks[i-1].Overlaps(breaks[i]) {
			return fmt.Errorf("breaks %s and %s overlap", breaks[i-1], breaks[i])
		}
	}
	return nil
}

// WeeklySchedule рабочие часы мастера на 7 дней недели
type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday правило для дня недели
func (w WeeklySchedule) ForWeekday(day time.Weekday) DaySchedule {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{}
	}
}

// Validate проверяет правила всех дней
func (w WeeklySchedule) Validate() error {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if err := w.ForWeekday(day).Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrValidation, day, err)
		}
	}
	return nil
}

// WorkingWindow рабочее окно мастера на дату; false, если мастер в этот день не работает.
// Правило считается валидным: проверка выполняется при сохранении мастера.
func WorkingWindow(staff *StaffMember, date time.Time) (Interval, bool) {
	day := staff.Schedule.ForWeekday(date.Weekday())
	if !day.IsWorking {
		return Interval{}, false
	}
	return day.Window(), true
}

// BreaksOn перерывы мастера на дату по возрастанию
func BreaksOn(staff *StaffMember, date time.Time) []Interval {
	day := staff.Schedule.ForWeekday(date.Weekday())
	if !day.IsWorking {
		return nil
	}
	breaks := make([]Interval, 0, len(day.Breaks))
	for _, b := range day.Breaks {
		breaks = append(breaks, b.Interval())
	}
	sortIntervals(breaks)
	return breaks
}

// IsWorkingInterval true, если iv целиком внутри рабочего окна и не задевает перерывы
func IsWorkingInterval(staff *StaffMember, date time.Time, iv Interval) bool {
	window, ok := WorkingWindow(staff, date)
	if !ok || !window.Contains(iv) {
		return false
	}
	for _, b := range BreaksOn(staff, date) {
		if b.Overlaps(iv) {
			return false
		}
	}
	return true
}

// Subtract вычитает из base набор интервалов, возвращая свободные
// непустые подынтервалы по возрастанию
func Subtract(base Interval, busy []Interval) []Interval {
	sorted := slices.Clone(busy)
	sortIntervals(sorted)

	free := make([]Interval, 0, len(sorted)+1)
	cursor := base.Start
	for _, b := range sorted {
		if b.End <= cursor || b.IsEmpty() {
			continue
		}
		if b.Start >= base.End {
			break
		}
		if b.Start > cursor {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		cursor = max(cursor, b.End)
	}
	if cursor < base.End {
		free = append(free, Interval{Start: cursor, End: base.End})
	}
	return free
}

func sortIntervals(ivs []Interval) {
	slices.SortFunc(ivs, func(a, b Interval) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
}
