package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvPaths are tried in order by LoadEnv; the first existing file wins.
var DefaultEnvPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from the first .env file that exists and
// returns its path. Variables already set in the environment are not overridden.
// A missing file is not an error.
func LoadEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = DefaultEnvPaths
	}
	for _, envPath := range paths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// applyEnv overrides cfg with the V2T_* and provider variables that are set.
func applyEnv(cfg *Config) error {
	setString(&cfg.Model, "V2T_MODEL")
	setString(&cfg.ModelSize, "V2T_MODEL_SIZE")
	setString(&cfg.ModelPath, "V2T_MODEL_PATH")
	setString(&cfg.ModelsDir, "V2T_MODELS_DIR")
	setString(&cfg.DataDir, "V2T_DATA_DIR")
	setString(&cfg.FFmpeg, "V2T_FFMPEG")
	setString(&cfg.FFprobe, "V2T_FFPROBE")
	setString(&cfg.Language, "V2T_LANGUAGE")
	setString(&cfg.Prompt, "V2T_PROMPT")

	if v := strings.TrimSpace(os.Getenv("V2T_THREADS")); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid V2T_THREADS %q: %w", v, err)
		}
		cfg.Threads = uint(n)
	}
	if v := strings.TrimSpace(os.Getenv("V2T_NO_HISTORY")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid V2T_NO_HISTORY %q: %w", v, err)
		}
		cfg.History.Disabled = b
	}

	setString(&cfg.WhisperCpp.Binary, "WHISPER_CPP_BINARY")
	setString(&cfg.WhisperCpp.Model, "WHISPER_CPP_MODEL")

	setString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
