package whisper

import (
	"context"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"v2t/internal/app/model"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
	prompt   string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, modelName, language, prompt string) *RemoteTranscriber {
	if language == "auto" {
		language = ""
	}
	return &RemoteTranscriber{
		client:   client,
		model:    modelName,
		language: language,
		prompt:   prompt,
	}
}

func (rt *RemoteTranscriber) Name() string { return rt.model }

func (rt *RemoteTranscriber) Close() error { return nil }

// Transcribe uploads the audio file and returns the verbose transcription.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, inputFilePath string) (*model.Result, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return nil, err
	}

	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Language: rt.language,
		Prompt:   rt.prompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &model.Result{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: seconds(resp.Duration),
	}
	for _, s := range resp.Segments {
		result.Segments = append(result.Segments, model.Segment{
			Start: seconds(s.Start),
			End:   seconds(s.End),
			Text:  s.Text,
		})
	}
	return result, nil
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
