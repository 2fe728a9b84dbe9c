package memory

import (
	"fmt"

	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
)

var (
	ErrSalonNotFound       = fmt.Errorf("%w: memory: salon", domain.ErrNotFound)
	ErrClientNotFound      = fmt.Errorf("%w: memory: client", domain.ErrNotFound)
	ErrStaffNotFound       = fmt.Errorf("%w: memory: staff member", domain.ErrNotFound)
	ErrServiceNotFound     = fmt.Errorf("%w: memory: service", domain.ErrNotFound)
	ErrAppointmentNotFound = fmt.Errorf("%w: memory: appointment", domain.ErrNotFound)
	ErrVersionMismatch     = fmt.Errorf("%w: memory: version mismatch", domain.ErrStaleWrite)
)
