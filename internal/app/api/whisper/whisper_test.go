package whisper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
)

func TestLoad_Unavailable(t *testing.T) {
	_, err := Load(context.Background(), provider.Settings{ModelsDir: t.TempDir()}.WithDefaults(), zap.NewNop())
	assert.True(t, errors.Is(err, apperrors.ErrModelUnavailable))
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, provider.Default().Registered(), provider.FamilyWhisper)
}

func TestContextLanguage(t *testing.T) {
	tests := []struct {
		name         string
		language     string
		multilingual bool
		want         string
		wantErr      bool
	}{
		{name: "multilingual auto", language: "auto", multilingual: true, want: "auto"},
		{name: "multilingual explicit", language: "De", multilingual: true, want: "de"},
		{name: "multilingual empty", language: "", multilingual: true, want: ""},
		{name: "english-only auto skips", language: "auto", want: ""},
		{name: "english-only default settings skip", language: provider.Settings{}.WithDefaults().Language, want: ""},
		{name: "english-only en skips", language: "en", want: ""},
		{name: "english-only empty skips", language: "", want: ""},
		{name: "english-only other language", language: "fr", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := contextLanguage(tt.language, tt.multilingual)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
