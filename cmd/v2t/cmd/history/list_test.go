package history

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"v2t/internal/app/model"
)

func TestPrintRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []model.Transcription{
		{
			ID: 2, VideoPath: "/v/b.mp4", ModelFamily: "whisper", ModelName: "ggml-base.bin",
			AudioDuration: 12, Transcription: "hello\n  world", LastConversionTime: now.Add(-2 * time.Hour),
		},
		{
			ID: 1, VideoPath: "/v/a.mp4", ModelFamily: "openai", ModelName: "whisper-1",
			HasError: true, ErrorMessage: "401 unauthorized", LastConversionTime: now.Add(-48 * time.Hour),
		},
	}

	var out bytes.Buffer
	require.NoError(t, printRows(&out, rows, now))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "2 hours ago")
	assert.Contains(t, lines[1], "whisper/ggml-base.bin")
	assert.Contains(t, lines[1], "hello world")
	assert.Contains(t, lines[2], "error: 401 unauthorized")
}

func TestPrintRows_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printRows(&out, nil, time.Now()))
	assert.Equal(t, "no conversions recorded\n", out.String())
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a b", snippet(" a\n b "))
	long := strings.Repeat("x", 100)
	got := snippet(long)
	assert.Len(t, got, snippetLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}
