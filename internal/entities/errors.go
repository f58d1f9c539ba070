package entities

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them so transport layers can map it.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")
	ErrGenerationFailure = errors.New("id generation failure")
)

var (
	ErrBinRequestNotFound   = fmt.Errorf("bin request %w", ErrNotFound)
	ErrDeliveryNotFound     = fmt.Errorf("delivery %w", ErrNotFound)
	ErrSmartBinNotFound     = fmt.Errorf("smart bin %w", ErrNotFound)
	ErrPickupNotFound       = fmt.Errorf("pickup request %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)

	// ErrStatusChanged is returned by compare-and-swap writes when the row left the expected status.
	ErrStatusChanged = fmt.Errorf("%w: status changed concurrently", ErrConflict)
	ErrDuplicateID   = fmt.Errorf("%w: duplicate identifier", ErrConflict)
)

// ErrDeviceTokenUnregistered is returned by push senders when the provider no longer knows the token.
var ErrDeviceTokenUnregistered = fmt.Errorf("device token %w", ErrNotFound)
