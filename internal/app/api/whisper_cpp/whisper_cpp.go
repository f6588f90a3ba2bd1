package whisper_cpp

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"v2t/internal/app/model"
	"v2t/internal/app/util/files"
)

// LocalTranscriber implements local transcription, using the whisper.cpp binary.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	tempDir    string
	language   string
	prompt     string
	threads    uint
	logger     *zap.Logger
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(binaryPath, modelPath string, logger *zap.Logger) *LocalTranscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		tempDir:    os.TempDir(),
		logger:     logger,
	}
}

func (lt *LocalTranscriber) Name() string {
	return filepath.Base(lt.modelPath)
}

// Close is a no-op; the binary loads the model per invocation.
func (lt *LocalTranscriber) Close() error {
	return nil
}

// Transcribe runs the binary on a 16kHz WAV file and returns the text it writes.
func (lt *LocalTranscriber) Transcribe(ctx context.Context, inputFilePath string) (*model.Result, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return nil, err
	}

	outputFile := filepath.Join(lt.tempDir, "transcription_"+uuid.NewString())
	args := lt.buildArgs(inputFilePath, outputFile)

	command := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	lt.logger.Debug("running whisper.cpp",
		zap.String("binary", lt.binaryPath),
		zap.String("args", strings.Join(args, " ")))

	if err := command.Run(); err != nil {
		return nil, &cliError{err: err, stderr: strings.TrimSpace(stderr.String())}
	}

	txtFile := outputFile + ".txt"
	defer os.Remove(txtFile)

	output, err := files.ReadOutputFile(txtFile)
	if err != nil {
		return nil, err
	}

	lt.logger.Debug("whisper.cpp finished", zap.String("audio", inputFilePath), zap.Int("chars", len(output)))

	result := &model.Result{Text: output}
	if lt.language != "" && lt.language != "auto" {
		result.Language = lt.language
	}
	return result, nil
}

func (lt *LocalTranscriber) buildArgs(inputFilePath, outputFile string) []string {
	language := lt.language
	if language == "" {
		language = "auto"
	}
	args := []string{
		"-m", lt.modelPath,
		"-l", language,
	}
	if lt.threads > 0 {
		args = append(args, "-t", strconv.FormatUint(uint64(lt.threads), 10))
	}
	if lt.prompt != "" {
		args = append(args, "--prompt", lt.prompt)
	}
	return append(args,
		"-otxt",
		"-f", inputFilePath,
		"-of", outputFile,
	)
}

type cliError struct {
	err    error
	stderr string
}

func (e *cliError) Error() string {
	if e.stderr == "" {
		return "whisper.cpp: " + e.err.Error()
	}
	return "whisper.cpp: " + e.err.Error() + ": " + e.stderr
}

func (e *cliError) Unwrap() error { return e.err }
