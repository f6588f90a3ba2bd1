// Package whisper loads ggml whisper weights in-process through the whisper.cpp Go
// bindings. The bindings need cgo and libwhisper, so they are only compiled with
// -tags whisper_cpp; without the tag the family reports ErrModelUnavailable.
package whisper

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"v2t/internal/app/api"
	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
)

func init() {
	provider.RegisterLoader(provider.FamilyWhisper, Load)
}

// Load loads ggml-<size>.bin (or settings.ModelPath) and blocks until the weights are in memory.
func Load(ctx context.Context, settings provider.Settings, logger *zap.Logger) (api.Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return loadModel(ctx, settings, logger)
}

// contextLanguage returns the language to set on an inference context, or "" to
// leave the bindings default. English-only weights reject SetLanguage outright, so
// they accept only auto and en.
func contextLanguage(language string, multilingual bool) (string, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if multilingual {
		return language, nil
	}
	switch language {
	case "", provider.DefaultLanguage, "en":
		return "", nil
	default:
		return "", apperrors.Newf("language %q needs multilingual weights, the loaded model is English-only", language)
	}
}
