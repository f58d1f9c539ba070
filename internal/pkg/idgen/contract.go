//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=idgen_test
package idgen

import (
	"context"

	"waste-service/pkg/logger"
)

type Sequence interface {
	Next(ctx context.Context, prefix string) (int64, error)
}

type generatorLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
