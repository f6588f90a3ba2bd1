package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/model"
)

// Target format produced by Extract and expected by the local whisper models.
const (
	TargetSampleRate = 16000
	TargetChannels   = 1
	TargetCodec      = "pcm_s16le"
	TargetBitDepth   = 16
)

// Extractor runs ffmpeg and ffprobe as synchronous subprocesses.
type Extractor struct {
	ffmpegPath  string
	ffprobePath string
	logger      *zap.Logger
}

// NewExtractor returns an Extractor. Empty paths fall back to the binaries on PATH.
func NewExtractor(ffmpegPath, ffprobePath string, logger *zap.Logger) *Extractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		logger:      logger,
	}
}

// DeriveAudioPath replaces the final extension of videoPath with ".wav".
func DeriveAudioPath(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".wav"
}

// Extract writes a mono 16kHz 16-bit PCM WAV track of videoPath to audioPath,
// overwriting any existing file. An empty audioPath is derived with DeriveAudioPath.
// Partial output is left in place when ffmpeg fails.
func (e *Extractor) Extract(ctx context.Context, videoPath, audioPath string) (string, error) {
	if audioPath == "" {
		audioPath = DeriveAudioPath(videoPath)
	}

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-ac", strconv.Itoa(TargetChannels),
		"-acodec", TargetCodec,
		"-ar", strconv.Itoa(TargetSampleRate),
		audioPath,
	}

	if filepath.Clean(videoPath) == filepath.Clean(audioPath) {
		return "", &apperrors.MediaConversionError{
			Tool:     e.ffmpegPath,
			Args:     args,
			ExitCode: -1,
			Err:      apperrors.Newf("output path %s is the input path", audioPath),
		}
	}

	e.logger.Debug("extracting audio",
		zap.String("video", videoPath),
		zap.String("audio", audioPath),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		convErr := conversionError(e.ffmpegPath, args, err, stderr.String())
		e.logger.Error("ffmpeg failed",
			zap.String("video", videoPath),
			zap.Int("exit_code", convErr.ExitCode),
			zap.String("stderr", stderr.String()))
		return "", convErr
	}

	e.logger.Info("audio extracted", zap.String("video", videoPath), zap.String("audio", audioPath))
	return audioPath, nil
}

// Duration returns the media duration of filePath in whole seconds.
func (e *Extractor) Duration(ctx context.Context, filePath string) (int, error) {
	args := []string{"-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath}
	output, err := e.probe(ctx, args)
	if err != nil {
		return 0, err
	}
	return parseDurationOutput(string(output))
}

// Probe returns the parsed ffprobe stream and format description of filePath.
func (e *Extractor) Probe(ctx context.Context, filePath string) (*model.FFProbeOutput, error) {
	args := []string{"-v", "quiet", "-print_format", "json", "-show_streams", "-show_format", filePath}
	output, err := e.probe(ctx, args)
	if err != nil {
		return nil, err
	}

	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return nil, apperrors.Wrap(err, "parse ffprobe output")
	}
	return &probeOutput, nil
}

// IsTargetFormat reports whether filePath already is mono 16kHz 16-bit PCM.
func (e *Extractor) IsTargetFormat(ctx context.Context, filePath string) (bool, error) {
	probeOutput, err := e.Probe(ctx, filePath)
	if err != nil {
		return false, err
	}
	stream, ok := probeOutput.AudioStream()
	if !ok {
		return false, nil
	}
	return stream.CodecName == TargetCodec &&
		stream.SampleRate == TargetSampleRate &&
		stream.Channels == TargetChannels, nil
}

func (e *Extractor) probe(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.ffprobePath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, conversionError(e.ffprobePath, args, err, stderr.String())
	}
	return output, nil
}

func conversionError(tool string, args []string, err error, stderr string) *apperrors.MediaConversionError {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &apperrors.MediaConversionError{
		Tool:     tool,
		Args:     args,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      err,
	}
}

func parseDurationOutput(output string) (int, error) {
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}
