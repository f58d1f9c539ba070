//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=user_test
package user

import (
	"context"
)

type Repository interface {
	UpdateDeviceToken(ctx context.Context, userID string, token string) error
}
