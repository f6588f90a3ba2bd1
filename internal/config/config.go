// Package config loads the CLI configuration from .env files, an optional YAML file
// and environment variables, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/util/files"
)

type Config struct {
	Model     string `yaml:"model" validate:"required,family"`
	ModelSize string `yaml:"model_size" validate:"required"`
	ModelPath string `yaml:"model_path"`
	ModelsDir string `yaml:"models_dir" validate:"required"`
	DataDir   string `yaml:"data_dir" validate:"required"`
	Language  string `yaml:"language"`
	Prompt    string `yaml:"prompt"`
	Threads   uint   `yaml:"threads" validate:"lte=64"`

	FFmpeg  string `yaml:"ffmpeg" validate:"required"`
	FFprobe string `yaml:"ffprobe" validate:"required"`

	History    HistoryConfig    `yaml:"history"`
	WhisperCpp WhisperCppConfig `yaml:"whisper_cpp"`
	OpenAI     RemoteConfig     `yaml:"openai"`
	Gemini     RemoteConfig     `yaml:"gemini"`
}

type HistoryConfig struct {
	Disabled bool `yaml:"disabled"`
}

type WhisperCppConfig struct {
	Binary  string `yaml:"binary"`
	Model   string `yaml:"model"`
	TempDir string `yaml:"temp_dir"`
}

type RemoteConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url" validate:"omitempty,url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Load builds the configuration. An empty path uses DefaultConfigFile when it
// exists in the working directory; an explicit path must exist.
func Load(path string) (*Config, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := cfg.readFile(path, explicit); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}

	cfg.ModelsDir = files.ExpandHome(cfg.ModelsDir)
	cfg.DataDir = files.ExpandHome(cfg.DataDir)
	cfg.ModelPath = files.ExpandHome(cfg.ModelPath)
	cfg.WhisperCpp.Model = files.ExpandHome(cfg.WhisperCpp.Model)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(os.ExpandEnv(path))
	if os.IsNotExist(err) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "parse %s: %v", path, err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("family", func(fl validator.FieldLevel) bool {
		_, err := provider.ParseFamily(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks field constraints. Failures match ErrInvalidConfig.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "family":
			msgs = append(msgs, fmt.Sprintf("%s: unsupported model %q (supported: %s)",
				fe.Namespace(), fe.Value(), strings.Join(provider.FamilyNames(), ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	return apperrors.Wrap(apperrors.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// DBPath is the history database location.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "transcription.db")
}

// ProviderSettings maps the configuration onto the loader settings of the configured
// family.
func (c *Config) ProviderSettings() provider.Settings {
	s := provider.Settings{
		ModelSize: c.ModelSize,
		ModelPath: c.ModelPath,
		ModelsDir: c.ModelsDir,
		Language:  c.Language,
		Prompt:    c.Prompt,
		Threads:   c.Threads,
	}

	family, _ := provider.ParseFamily(c.Model)
	switch family {
	case provider.FamilyWhisperCpp:
		s.BinaryPath = c.WhisperCpp.Binary
		s.TempDir = c.WhisperCpp.TempDir
		if c.WhisperCpp.Model != "" {
			s.ModelPath = c.WhisperCpp.Model
		}
	case provider.FamilyOpenAI:
		s.APIKey = c.OpenAI.APIKey
		s.BaseURL = c.OpenAI.BaseURL
		s.ModelPath = c.OpenAI.Model
		s.Timeout = c.OpenAI.Timeout
	case provider.FamilyGemini:
		s.APIKey = c.Gemini.APIKey
		s.BaseURL = c.Gemini.BaseURL
		s.ModelPath = c.Gemini.Model
		s.Timeout = c.Gemini.Timeout
	}
	return s
}
