//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bin_request_approve_post_test
package bin_request_approve_post

import (
	"context"

	"waste-service/internal/entities"
	"waste-service/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ApproveRequest(ctx context.Context, approval entities.BinRequestApproval) (*entities.ApprovalResult, error)
}
