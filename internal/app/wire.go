//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"v2t/internal/app/converter"
	"v2t/internal/config"
)

// InitializeConverter loads the model and opens the history database. The returned
// cleanup releases both.
func InitializeConverter(ctx context.Context, cfg *config.Config, logger *zap.Logger, progress converter.ProgressConfig) (*converter.Converter, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
