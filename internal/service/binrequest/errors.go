package binrequest

import (
	"fmt"

	"waste-service/internal/entities"
)

var (
	ErrMissingResident     = fmt.Errorf("%w: resident id is required", entities.ErrValidation)
	ErrMissingAddress      = fmt.Errorf("%w: delivery address is required", entities.ErrValidation)
	ErrInvalidBinType      = fmt.Errorf("%w: invalid bin type", entities.ErrValidation)
	ErrMissingDeliveryDate = fmt.Errorf("%w: delivery date is required", entities.ErrValidation)
	ErrMissingReason       = fmt.Errorf("%w: rejection reason is required", entities.ErrValidation)

	ErrNotOwner    = fmt.Errorf("%w: bin request belongs to another resident", entities.ErrForbidden)
	ErrStaffOnly   = fmt.Errorf("%w: operator or admin role required", entities.ErrForbidden)
	ErrNotResident = fmt.Errorf("%w: resident role required", entities.ErrForbidden)

	ErrRequestNotPending = fmt.Errorf("%w: bin request is not pending", entities.ErrConflict)
	ErrBinNotAvailable   = fmt.Errorf("%w: smart bin is not available", entities.ErrConflict)
	ErrNoAvailableBin    = fmt.Errorf("%w: no available smart bin", entities.ErrConflict)
)
