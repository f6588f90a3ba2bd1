package config

import "v2t/internal/app/api/provider"

// Default configuration values
const (
	DefaultConfigFile = "v2t.yaml"
	DefaultDataDir    = "~/.v2t"
	DefaultModelsDir  = "~/.v2t/models"

	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"
)

// Default returns the configuration used when no file or env variable overrides it.
// Remote timeouts are zero: requests are bounded by the caller's context only.
func Default() *Config {
	return &Config{
		Model:     provider.DefaultFamily.String(),
		ModelSize: provider.DefaultModelSize,
		ModelsDir: DefaultModelsDir,
		DataDir:   DefaultDataDir,
		Language:  provider.DefaultLanguage,
		FFmpeg:    DefaultFFmpeg,
		FFprobe:   DefaultFFprobe,
		OpenAI: RemoteConfig{
			Model: provider.DefaultOpenAIModel,
		},
		Gemini: RemoteConfig{
			Model: provider.DefaultGeminiModel,
		},
	}
}
