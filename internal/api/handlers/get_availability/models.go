package get_availability

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	getAvailability "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	StaffID         int64             `json:"staffId"`
	ServiceID       int64             `json:"serviceId"`
	DurationMinutes int               `json:"duration"`
	StepMinutes     int               `json:"step"`
	From            string            `json:"from"`
	To              string            `json:"to"`
	Days            []DayAvailability `json:"days"`
}

// DayAvailability свободные времена начала на дату
type DayAvailability struct {
	Date       string   `json:"date"`
	StartTimes []string `json:"startTimes"`
}

// ToUseCaseRequest собирает запрос use case из пути и query параметров:
// serviceId, from, to обязательны; source опционален (online | salon)
func ToUseCaseRequest(salonID, staffID int64, query url.Values) (*getAvailability.Request, error) {
	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		return nil, fmt.Errorf("invalid serviceId %q", query.Get("serviceId"))
	}

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}
	to, err := time.Parse(domain.DateFormat, query.Get("to"))
	if err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}

	origin := domain.OriginOnline
	if source := query.Get("source"); source != "" {
		origin = domain.Origin(source)
		if !origin.IsValid() {
			return nil, fmt.Errorf("invalid source %q", source)
		}
	}

	return &getAvailability.Request{
		SalonID:       salonID,
		StaffMemberID: staffID,
		ServiceID:     serviceID,
		From:          from,
		To:            to,
		Origin:        origin,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayAvailability, 0, len(resp.Days))
	for _, d := range resp.Days {
		times := make([]string, 0, len(d.StartTimes))
		for _, t := range d.StartTimes {
			times = append(times, t.String())
		}
		days = append(days, DayAvailability{Date: d.Date.Format(domain.DateFormat), StartTimes: times})
	}

	return &AvailabilityResponse{
		StaffID:         resp.StaffMemberID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		StepMinutes:     resp.StepMinutes,
		From:            resp.From.Format(domain.DateFormat),
		To:              resp.To.Format(domain.DateFormat),
		Days:            days,
	}
}
