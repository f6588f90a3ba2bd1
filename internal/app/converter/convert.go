package converter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"v2t/internal/app/api/provider"
	"v2t/internal/app/model"
	"v2t/internal/app/repository"
	"v2t/internal/app/util/files"
)

// Transcriber is the part of transcriber.Transcriber the converter drives.
type Transcriber interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) (string, error)
	Transcribe(ctx context.Context, audioPath string) (string, error)
	Family() provider.Family
	ModelName() string
}

// MediaProber inspects audio files with ffprobe.
type MediaProber interface {
	// Duration reports media duration in whole seconds.
	Duration(ctx context.Context, filePath string) (int, error)
	// IsTargetFormat reports whether filePath is already mono 16kHz 16-bit PCM.
	IsTargetFormat(ctx context.Context, filePath string) (bool, error)
}

// Options control a single Convert call.
type Options struct {
	// AudioPath is where the extracted track is written. Empty derives it from the input.
	// A track written to an explicit AudioPath is always kept.
	AudioPath string
	// KeepAudio leaves a derived track on disk after transcription.
	KeepAudio bool
}

type Converter struct {
	transcriber Transcriber
	prober      MediaProber
	db          repository.TranscriptionDAO
	progress    *ProgressManager
	metrics     *Metrics
	logger      *zap.Logger
}

// NewConverter wires the pipeline. db may be nil, in which case nothing is recorded.
func NewConverter(transcriber Transcriber, prober MediaProber, transcriptionDAO repository.TranscriptionDAO,
	progress ProgressConfig, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		transcriber: transcriber,
		prober:      prober,
		db:          transcriptionDAO,
		progress:    NewProgressManager(progress),
		logger:      logger,
	}
}

// SetMetrics makes subsequent conversions report to m.
func (c *Converter) SetMetrics(m *Metrics) {
	c.metrics = m
}

// Close stops the progress container. The transcriber and the history database
// are owned by whoever constructed them.
func (c *Converter) Close() error {
	c.progress.Shutdown()
	return nil
}

// Convert extracts the audio of inputPath (target-format WAV input is used as is), probes its
// duration and transcribes it. A history row is recorded for successes and
// failures alike; the returned row is non-nil in both cases.
func (c *Converter) Convert(ctx context.Context, inputPath string, opts Options) (*model.Transcription, error) {
	name := filepath.Base(inputPath)
	row := &model.Transcription{
		VideoPath:   inputPath,
		ModelFamily: c.transcriber.Family().String(),
		ModelName:   c.transcriber.ModelName(),
	}

	bar := c.progress.CreateBar(3, "Converting "+name)
	defer c.progress.Wait()

	c.logger.Info("processing file", zap.String("file", inputPath))
	start := time.Now()

	audioPath, extracted, err := c.prepareAudio(ctx, inputPath, opts)
	if err != nil {
		bar.Abort()
		return c.fail(ctx, row, err)
	}
	row.AudioPath = audioPath
	bar.Increment()

	duration, err := c.prober.Duration(ctx, audioPath)
	if err != nil {
		bar.Abort()
		return c.fail(ctx, row, err)
	}
	row.AudioDuration = duration
	bar.Increment()

	text, err := c.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		bar.Abort()
		return c.fail(ctx, row, err)
	}
	row.Transcription = text
	bar.Increment()

	if extracted && opts.AudioPath == "" && !opts.KeepAudio {
		if err := os.Remove(audioPath); err != nil {
			c.logger.Warn("failed to remove extracted audio", zap.String("audio", audioPath), zap.Error(err))
		}
	}

	c.record(ctx, row)
	c.metrics.RecordSuccess(row.ModelFamily, time.Since(start), duration)
	c.logger.Info("transcription completed",
		zap.String("file", inputPath),
		zap.Int("duration_s", duration),
		zap.Int("chars", len(text)))
	return row, nil
}

// prepareAudio returns the WAV to transcribe and whether it was written by ffmpeg.
// WAV input already in the target format is used as is; any other WAV is
// re-encoded next to itself as <name>.16k.wav.
func (c *Converter) prepareAudio(ctx context.Context, inputPath string, opts Options) (string, bool, error) {
	audioPath := opts.AudioPath
	if files.IsWAV(inputPath) && audioPath == "" {
		ok, err := c.prober.IsTargetFormat(ctx, inputPath)
		if err != nil {
			return "", false, err
		}
		if ok {
			return inputPath, false, nil
		}
		audioPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".16k.wav"
		c.logger.Info("re-encoding wav to the target format", zap.String("file", inputPath), zap.String("audio", audioPath))
	}
	audioPath, err := c.transcriber.ExtractAudio(ctx, inputPath, audioPath)
	if err != nil {
		return "", false, err
	}
	return audioPath, true, nil
}

func (c *Converter) fail(ctx context.Context, row *model.Transcription, err error) (*model.Transcription, error) {
	row.HasError = true
	row.ErrorMessage = err.Error()
	c.record(ctx, row)
	c.metrics.RecordFailure(row.ModelFamily, err)
	return row, err
}

// record stores row; a failing history write is logged and does not fail the conversion.
func (c *Converter) record(ctx context.Context, row *model.Transcription) {
	row.LastConversionTime = time.Now()
	if c.db == nil {
		return
	}
	if err := c.db.Record(ctx, row); err != nil {
		c.logger.Warn("failed to record transcription", zap.String("file", row.VideoPath), zap.Error(err))
	}
}
