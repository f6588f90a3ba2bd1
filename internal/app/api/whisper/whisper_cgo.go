//go:build whisper_cpp

package whisper

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	whisperpkg "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"go.uber.org/zap"

	"v2t/internal/app/api"
	"v2t/internal/app/api/provider"
	"v2t/internal/app/audio"
	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/model"
)

// Model is a whisper.cpp model held in memory.
type Model struct {
	model    whisperpkg.Model
	name     string
	threads  uint
	language string
	prompt   string
	logger   *zap.Logger
}

func loadModel(ctx context.Context, settings provider.Settings, logger *zap.Logger) (api.Model, error) {
	modelPath, err := provider.ResolveGGMLPath(settings)
	if err != nil {
		return nil, apperrors.ModelUnavailable(provider.FamilyWhisper.String(), err)
	}
	logger.Info("loading whisper model", zap.String("model", modelPath))

	threads := settings.Threads
	if threads == 0 {
		threads = uint(runtime.NumCPU())
	}

	m, err := whisperpkg.New(modelPath)
	if err != nil {
		return nil, apperrors.ModelUnavailable(provider.FamilyWhisper.String(), apperrors.Wrapf(err, "load model %s", modelPath))
	}

	logger.Info("whisper model loaded",
		zap.String("model", modelPath),
		zap.Uint("threads", threads),
		zap.Bool("multilingual", m.IsMultilingual()))

	return &Model{
		model:    m,
		name:     filepath.Base(modelPath),
		threads:  threads,
		language: settings.Language,
		prompt:   settings.Prompt,
		logger:   logger,
	}, nil
}

func (m *Model) Name() string { return m.name }

func (m *Model) Close() error {
	if m.model != nil {
		return m.model.Close()
	}
	return nil
}

// Transcribe decodes the WAV at audioPath, normalizes it to mono 16kHz and runs
// full-context inference. Cancelling ctx aborts before the encoder starts.
func (m *Model) Transcribe(ctx context.Context, audioPath string) (*model.Result, error) {
	pcm, err := audio.ReadWAV(audioPath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "decode %s", audioPath)
	}
	samples := pcm.Mono16k()
	if len(samples) == 0 {
		return nil, apperrors.Newf("%s contains no samples", audioPath)
	}

	wctx, err := m.model.NewContext()
	if err != nil {
		return nil, apperrors.Wrap(err, "create context")
	}
	wctx.SetThreads(m.threads)
	language, err := contextLanguage(m.language, m.model.IsMultilingual())
	if err != nil {
		return nil, err
	}
	if language != "" {
		if err := wctx.SetLanguage(language); err != nil {
			return nil, apperrors.Wrapf(err, "set language %q", language)
		}
	}
	if m.prompt != "" {
		wctx.SetInitialPrompt(m.prompt)
	}

	keepGoing := func() bool { return ctx.Err() == nil }
	if err := wctx.Process(samples, keepGoing, nil, nil); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, apperrors.Wrap(err, "process audio")
	}

	result := &model.Result{}
	var texts []string
	for {
		seg, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, "next segment")
		}
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		texts = append(texts, text)
		result.Segments = append(result.Segments, model.Segment{Start: seg.Start, End: seg.End, Text: text})
	}

	result.Text = strings.TrimSpace(strings.Join(texts, " "))
	result.Language = wctx.Language()
	if result.Language == "" || result.Language == "auto" {
		result.Language = wctx.DetectedLanguage()
	}
	if n := len(result.Segments); n > 0 {
		result.Duration = result.Segments[n-1].End
	}

	m.logger.Debug("whisper transcription complete",
		zap.String("audio", audioPath),
		zap.Int("segments", len(result.Segments)),
		zap.String("language", result.Language))
	return result, nil
}
