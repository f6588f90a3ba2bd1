package openai

import (
	"net/http"

	"github.com/sashabaranov/go-openai"

	"v2t/internal/app/api/provider"
)

// NewClient builds an API client from settings. BaseURL points the client at an
// OpenAI-compatible server; Timeout bounds each HTTP request when set.
func NewClient(settings provider.Settings) *openai.Client {
	cfg := openai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		cfg.BaseURL = settings.BaseURL
	}
	if settings.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: settings.Timeout}
	}
	return openai.NewClientWithConfig(cfg)
}
