//go:build !whisper_cpp

package whisper

import (
	"context"

	"go.uber.org/zap"

	"v2t/internal/app/api"
	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
)

func loadModel(ctx context.Context, settings provider.Settings, logger *zap.Logger) (api.Model, error) {
	return nil, apperrors.ModelUnavailable(provider.FamilyWhisper.String(),
		apperrors.New("whisper.cpp bindings not compiled in, rebuild with -tags whisper_cpp"))
}
