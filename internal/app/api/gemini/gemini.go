// Package gemini transcribes audio with a Gemini model. Small files are sent inline,
// larger ones go through the Files API first.
package gemini

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"v2t/internal/app/api"
	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/model"
)

// maxInlineBytes is the request size above which audio is uploaded instead of inlined.
const maxInlineBytes = 20 << 20

const defaultPrompt = "Generate a verbatim transcript of the speech in this audio. " +
	"Return only the transcript text, without timestamps, speaker labels or commentary."

func init() {
	provider.RegisterLoader(provider.FamilyGemini, Load)
}

// Transcriber sends audio to the Gemini generateContent endpoint.
type Transcriber struct {
	client   *genai.Client
	model    string
	prompt   string
	language string
	logger   *zap.Logger
}

// Load creates a Gemini client. It fails with ErrModelUnavailable when no API key is set.
func Load(ctx context.Context, settings provider.Settings, logger *zap.Logger) (api.Model, error) {
	family := provider.FamilyGemini.String()
	if settings.APIKey == "" {
		return nil, apperrors.ModelUnavailable(family, apperrors.Wrap(apperrors.ErrMissingAPIKey, "set GEMINI_API_KEY"))
	}

	cfg := &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if settings.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = settings.BaseURL
	}
	if settings.Timeout > 0 {
		timeout := settings.Timeout
		cfg.HTTPOptions.Timeout = &timeout
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, apperrors.ModelUnavailable(family, err)
	}

	modelName := settings.ModelPath
	if modelName == "" {
		modelName = provider.DefaultGeminiModel
	}
	language := settings.Language
	if language == provider.DefaultLanguage {
		language = ""
	}

	logger.Info("using Gemini", zap.String("model", modelName))
	return &Transcriber{
		client:   client,
		model:    modelName,
		prompt:   settings.Prompt,
		language: language,
		logger:   logger,
	}, nil
}

func (g *Transcriber) Name() string { return g.model }

func (g *Transcriber) Close() error { return nil }

// Transcribe returns the model's transcript of the WAV file at audioPath.
func (g *Transcriber) Transcribe(ctx context.Context, audioPath string) (*model.Result, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, err
	}

	audioPart, err := g.audioPart(ctx, audioPath, info.Size())
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(g.instructions()),
			audioPart,
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, err
	}

	return &model.Result{
		Text:     strings.TrimSpace(resp.Text()),
		Language: g.language,
	}, nil
}

func (g *Transcriber) audioPart(ctx context.Context, audioPath string, size int64) (*genai.Part, error) {
	if size <= maxInlineBytes {
		data, err := os.ReadFile(audioPath)
		if err != nil {
			return nil, err
		}
		return genai.NewPartFromBytes(data, "audio/wav"), nil
	}

	g.logger.Debug("uploading audio", zap.String("audio", audioPath), zap.Int64("bytes", size))
	file, err := g.client.Files.UploadFromPath(ctx, audioPath, &genai.UploadFileConfig{MIMEType: "audio/wav"})
	if err != nil {
		return nil, apperrors.Wrap(err, "upload audio")
	}
	return genai.NewPartFromURI(file.URI, file.MIMEType), nil
}

func (g *Transcriber) instructions() string {
	prompt := defaultPrompt
	if g.language != "" {
		prompt += " The speech is in " + g.language + "."
	}
	if g.prompt != "" {
		prompt += " Context: " + g.prompt
	}
	return prompt
}
