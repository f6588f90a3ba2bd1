package whisper

import (
	"context"

	"go.uber.org/zap"

	"v2t/internal/app/api"
	openaiclient "v2t/internal/app/api/openai"
	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
)

func init() {
	provider.RegisterLoader(provider.FamilyOpenAI, createOpenAIProvider)
}

// createOpenAIProvider needs an API key; the model name defaults to whisper-1.
func createOpenAIProvider(ctx context.Context, settings provider.Settings, logger *zap.Logger) (api.Model, error) {
	if settings.APIKey == "" {
		return nil, apperrors.ModelUnavailable(provider.FamilyOpenAI.String(),
			apperrors.Wrap(apperrors.ErrMissingAPIKey, "set OPENAI_API_KEY"))
	}

	modelName := settings.ModelPath
	if modelName == "" {
		modelName = provider.DefaultOpenAIModel
	}

	logger.Info("using OpenAI transcription API", zap.String("model", modelName))
	return NewRemoteTranscriber(openaiclient.NewClient(settings), modelName, settings.Language, settings.Prompt), nil
}
