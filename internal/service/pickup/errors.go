package pickup

import (
	"fmt"

	"waste-service/internal/entities"
)

var (
	ErrMissingAddress       = fmt.Errorf("%w: pickup address is required", entities.ErrValidation)
	ErrMissingScheduledDate = fmt.Errorf("%w: scheduled date is required", entities.ErrValidation)
	ErrInvalidBinType       = fmt.Errorf("%w: invalid bin type", entities.ErrValidation)
	ErrInvalidBinStatus     = fmt.Errorf("%w: bin status must be collected, empty or damaged", entities.ErrValidation)
	ErrNotACollector        = fmt.Errorf("%w: user is not an active collector", entities.ErrValidation)

	ErrNotResident          = fmt.Errorf("%w: resident role required", entities.ErrForbidden)
	ErrStaffOnly            = fmt.Errorf("%w: operator or admin role required", entities.ErrForbidden)
	ErrNotOwner             = fmt.Errorf("%w: pickup belongs to another resident", entities.ErrForbidden)
	ErrNotAssignedCollector = fmt.Errorf("%w: pickup is assigned to another collector", entities.ErrForbidden)
)
