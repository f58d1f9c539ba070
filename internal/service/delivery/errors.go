package delivery

import (
	"fmt"

	"waste-service/internal/entities"
)

var (
	ErrInvalidStatus         = fmt.Errorf("%w: invalid delivery status", entities.ErrValidation)
	ErrMissingScheduledDate  = fmt.Errorf("%w: scheduled date is required", entities.ErrValidation)
	ErrMissingRequestID      = fmt.Errorf("%w: bin request id is required", entities.ErrValidation)
	ErrMissingTrackingNumber = fmt.Errorf("%w: tracking number is required", entities.ErrValidation)

	ErrStaffOnly       = fmt.Errorf("%w: operator or admin role required", entities.ErrForbidden)
	ErrCannotUpdate    = fmt.Errorf("%w: collector, operator or admin role required", entities.ErrForbidden)
	ErrNotRecipient    = fmt.Errorf("%w: delivery belongs to another resident", entities.ErrForbidden)
	ErrRequestNotReady = fmt.Errorf("%w: bin request is not approved", entities.ErrConflict)
	ErrAlreadyLinked   = fmt.Errorf("%w: bin request already has a delivery", entities.ErrConflict)
)
