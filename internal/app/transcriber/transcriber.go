// Package transcriber turns video files into plain-text transcripts. A Transcriber
// owns one loaded model for its whole lifetime; audio extraction is delegated to
// ffmpeg through audio.Extractor.
package transcriber

import (
	"context"
	"os"

	"go.uber.org/zap"

	"v2t/internal/app/api"
	"v2t/internal/app/api/provider"
	"v2t/internal/app/audio"
	apperrors "v2t/internal/app/errors"
)

// Transcriber holds one loaded model. It is not safe for concurrent use; calls are
// synchronous and block until the external tool or the model finishes.
type Transcriber struct {
	family    provider.Family
	model     api.Model
	extractor *audio.Extractor
	logger    *zap.Logger
}

type options struct {
	logger    *zap.Logger
	registry  *provider.Registry
	settings  provider.Settings
	extractor *audio.Extractor
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry loads the model from r instead of provider.Default().
func WithRegistry(r *provider.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithSettings passes settings to the family loader.
func WithSettings(s provider.Settings) Option {
	return func(o *options) { o.settings = s }
}

// WithExtractor sets the ffmpeg wrapper used by ExtractAudio.
func WithExtractor(e *audio.Extractor) Option {
	return func(o *options) { o.extractor = e }
}

// New loads the model named by modelIdentifier ("whisper" when empty) and blocks
// until it is ready. Unknown identifiers fail with ErrUnsupportedModel; families
// whose library, binary, weights or credentials are missing fail with
// ErrModelUnavailable. No Transcriber is returned on error.
func New(ctx context.Context, modelIdentifier string, opts ...Option) (*Transcriber, error) {
	o := options{registry: provider.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.extractor == nil {
		o.extractor = audio.NewExtractor("", "", o.logger)
	}
	if modelIdentifier == "" {
		modelIdentifier = provider.DefaultFamily.String()
	}

	family, m, err := o.registry.Load(ctx, modelIdentifier, o.settings, o.logger)
	if err != nil {
		o.logger.Error("failed to load model", zap.String("model", modelIdentifier), zap.Error(err))
		return nil, err
	}

	o.logger.Info("model loaded", zap.String("family", family.String()), zap.String("name", m.Name()))
	return &Transcriber{
		family:    family,
		model:     m,
		extractor: o.extractor,
		logger:    o.logger,
	}, nil
}

// ExtractAudio writes the mono 16kHz PCM track of videoPath to audioPath and returns
// the path written. An empty audioPath becomes videoPath with its final extension
// replaced by ".wav". Existing files are overwritten.
func (t *Transcriber) ExtractAudio(ctx context.Context, videoPath, audioPath string) (string, error) {
	return t.extractor.Extract(ctx, videoPath, audioPath)
}

// Transcribe runs the model over the audio file and returns the transcript text.
// Every failure is a *errors.TranscriptionError.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	fail := func(err error) (string, error) {
		t.logger.Error("transcription failed", zap.String("audio", audioPath), zap.Error(err))
		return "", &apperrors.TranscriptionError{AudioPath: audioPath, Family: t.family.String(), Err: err}
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return fail(err)
	}
	if info.IsDir() {
		return fail(apperrors.Newf("%s is a directory", audioPath))
	}

	t.logger.Debug("transcribing", zap.String("audio", audioPath), zap.Int64("bytes", info.Size()))
	res, err := t.model.Transcribe(ctx, audioPath)
	if err != nil {
		return fail(err)
	}
	if res == nil {
		return fail(apperrors.New("model returned no result"))
	}

	t.logger.Info("transcribed", zap.String("audio", audioPath), zap.Int("chars", len(res.Text)))
	return res.Text, nil
}

// TranscribeVideo extracts the audio of videoPath next to it and transcribes it.
// The audio path is returned even when transcription fails.
func (t *Transcriber) TranscribeVideo(ctx context.Context, videoPath string) (text, audioPath string, err error) {
	audioPath, err = t.ExtractAudio(ctx, videoPath, "")
	if err != nil {
		return "", "", err
	}
	text, err = t.Transcribe(ctx, audioPath)
	return text, audioPath, err
}

// Family returns the family of the loaded model.
func (t *Transcriber) Family() provider.Family { return t.family }

// ModelName returns the name of the loaded weights or remote model.
func (t *Transcriber) ModelName() string { return t.model.Name() }

// Extractor returns the ffmpeg wrapper used by ExtractAudio.
func (t *Transcriber) Extractor() *audio.Extractor { return t.extractor }

// Close releases the model.
func (t *Transcriber) Close() error {
	return t.model.Close()
}
