package get_availability

import (
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxRangeDays int) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.SalonID <= 0 || req.StaffMemberID <= 0 || req.ServiceID <= 0 {
		return fmt.Errorf("%w: salon, staff member and service ids are required", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}
	days := domain.DaysBetween(req.From, req.To)
	if days < 0 {
		return fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	if days+1 > maxRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLong, days+1, maxRangeDays)
	}
	if req.Origin != "" && !req.Origin.IsValid() {
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidInput, req.Origin)
	}
	return nil
}
