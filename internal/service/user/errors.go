package user

import (
	"fmt"

	"waste-service/internal/entities"
)

var (
	ErrMissingUser  = fmt.Errorf("%w: user id is required", entities.ErrValidation)
	ErrInvalidToken = fmt.Errorf("%w: device token is required and must not exceed 4096 characters", entities.ErrValidation)
)
