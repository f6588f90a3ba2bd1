package api

import (
	"context"

	"v2t/internal/app/model"
)

// Model is a loaded speech-recognition model. Transcribe blocks until inference over
// the audio file completes.
type Model interface {
	Transcribe(ctx context.Context, audioPath string) (*model.Result, error)
	// Name identifies the loaded weights, e.g. "ggml-base.bin" or "whisper-1".
	Name() string
	Close() error
}
