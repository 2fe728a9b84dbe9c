package create_appointment

import (
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

// validateRequest проверяет форму запроса до обращения к хранилищу
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.SalonID <= 0 || req.ClientID <= 0 || req.StaffMemberID <= 0 || req.ServiceID <= 0 {
		return fmt.Errorf("%w: salon, client, staff member and service ids are required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if !req.Origin.IsValid() {
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidInput, req.Origin)
	}
	return nil
}
