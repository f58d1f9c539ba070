package notification

import (
	"fmt"

	"waste-service/internal/entities"
)

var (
	ErrMissingRecipient = fmt.Errorf("%w: notification recipient is required", entities.ErrValidation)
	ErrMissingContent   = fmt.Errorf("%w: notification type, title and message are required", entities.ErrValidation)
	ErrInvalidPriority  = fmt.Errorf("%w: invalid notification priority", entities.ErrValidation)
	ErrInvalidLimit     = fmt.Errorf("%w: limit must be positive", entities.ErrValidation)
)
