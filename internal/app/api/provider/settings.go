package provider

import (
	"os"
	"path/filepath"
	"time"

	apperrors "v2t/internal/app/errors"
)

const (
	DefaultModelSize   = "base"
	DefaultOpenAIModel = "whisper-1"
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultLanguage    = "auto"
)

// Settings carries everything a loader may need. Loaders ignore fields that do not
// apply to their family.
type Settings struct {
	// ModelSize selects ggml-<size>.bin for the local families.
	ModelSize string
	// ModelPath overrides the resolved ggml file (local) or names the remote model.
	ModelPath string
	ModelsDir string

	BinaryPath string
	TempDir    string
	Threads    uint

	Language string
	Prompt   string

	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// WithDefaults returns s with empty fields filled in.
func (s Settings) WithDefaults() Settings {
	if s.ModelSize == "" {
		s.ModelSize = DefaultModelSize
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	return s
}

// GGMLFileName returns the ggml weight file name for the configured size.
func (s Settings) GGMLFileName() string {
	size := s.ModelSize
	if size == "" {
		size = DefaultModelSize
	}
	return "ggml-" + size + ".bin"
}

// ResolveGGMLPath returns settings.ModelPath when set, otherwise <ModelsDir>/ggml-<size>.bin.
// The file must exist.
func ResolveGGMLPath(settings Settings) (string, error) {
	modelPath := settings.ModelPath
	if modelPath == "" {
		modelPath = filepath.Join(settings.ModelsDir, settings.GGMLFileName())
	}

	info, err := os.Stat(modelPath)
	if os.IsNotExist(err) {
		size := settings.ModelSize
		if size == "" {
			size = DefaultModelSize
		}
		return "", apperrors.Wrapf(apperrors.ErrFileNotFound,
			"model %s (run `v2t models download %s`)", modelPath, size)
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", apperrors.InvalidField("model path", modelPath+" is a directory")
	}
	return modelPath, nil
}
