//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=fcm_test
package fcm

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}
