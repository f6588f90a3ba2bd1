package whisper_cpp

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"v2t/internal/app/api"
	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/util/files"
)

// Binary names probed on PATH when no binary path is configured.
var defaultBinaries = []string{"whisper-cli", "whisper-cpp", "main"}

func init() {
	provider.RegisterLoader(provider.FamilyWhisperCpp, createWhisperCppProvider)
}

// createWhisperCppProvider checks that the binary and the ggml file exist and prepares
// the directory the CLI writes its transcripts to.
func createWhisperCppProvider(ctx context.Context, settings provider.Settings, logger *zap.Logger) (api.Model, error) {
	family := provider.FamilyWhisperCpp.String()

	binaryPath, err := lookupBinary(settings.BinaryPath)
	if err != nil {
		return nil, apperrors.ModelUnavailable(family, err)
	}

	modelPath, err := provider.ResolveGGMLPath(settings)
	if err != nil {
		return nil, apperrors.ModelUnavailable(family, err)
	}

	tempDir := settings.TempDir
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "v2t-whisper-cpp")
	}
	if err := files.EnsureDir(tempDir); err != nil {
		return nil, apperrors.ModelUnavailable(family, err)
	}

	logger.Info("using whisper.cpp binary",
		zap.String("binary", binaryPath),
		zap.String("model", modelPath))

	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		tempDir:    tempDir,
		language:   settings.Language,
		prompt:     settings.Prompt,
		threads:    settings.Threads,
		logger:     logger,
	}, nil
}

func lookupBinary(configured string) (string, error) {
	if configured != "" {
		path, err := exec.LookPath(configured)
		if err != nil {
			return "", apperrors.Wrapf(err, "whisper.cpp binary %s", configured)
		}
		return path, nil
	}
	for _, name := range defaultBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", apperrors.Newf("no whisper.cpp binary found on PATH (tried %v), set WHISPER_CPP_BINARY", defaultBinaries)
}
