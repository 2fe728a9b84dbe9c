package reschedule_appointment

import "fmt"

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.SalonID <= 0 || req.AppointmentID <= 0 {
		return fmt.Errorf("%w: salon and appointment ids are required", ErrInvalidInput)
	}
	if req.StaffMemberID != nil && *req.StaffMemberID <= 0 {
		return fmt.Errorf("%w: staff member id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if req.ExpectedVersion != nil && *req.ExpectedVersion <= 0 {
		return fmt.Errorf("%w: expected version must be positive", ErrInvalidInput)
	}
	return nil
}
