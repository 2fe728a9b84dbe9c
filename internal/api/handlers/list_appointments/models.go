package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/appointments/models"
)

const maxLimit = 500

// ToServiceRequest собирает запрос сервиса из query параметров:
// staffId, from, to, status (через запятую или повтором), limit, offset
func ToServiceRequest(salonID int64, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{SalonID: salonID}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			return nil, fmt.Errorf("invalid staffId %q", raw)
		}
		req.StaffMemberID = &staffID
	}

	var err error
	if req.StartDate, err = parseDate(query.Get("from")); err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}
	if req.EndDate, err = parseDate(query.Get("to")); err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}

	for _, raw := range query["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Statuses = append(req.Statuses, s)
			}
		}
	}

	if req.Limit, err = parseNonNegative(query.Get("limit")); err != nil || req.Limit > maxLimit {
		return nil, fmt.Errorf("invalid limit %q", query.Get("limit"))
	}
	if req.Offset, err = parseNonNegative(query.Get("offset")); err != nil {
		return nil, fmt.Errorf("invalid offset %q", query.Get("offset"))
	}

	return req, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseNonNegative(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return n, nil
}
