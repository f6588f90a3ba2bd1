package models

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"v2t/internal/app/testutil"
)

func TestModelsList(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	modelsDir := filepath.Join(dir, "models")
	require.NoError(t, os.MkdirAll(modelsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modelsDir, "ggml-tiny.en.bin"), make([]byte, 2048), 0o644))
	t.Setenv("V2T_MODELS_DIR", modelsDir)
	t.Setenv("V2T_MODEL_SIZE", "tiny.en")

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(io.Discard)
	Cmd.SetArgs([]string{"list"})
	require.NoError(t, Cmd.ExecuteContext(context.Background()))

	var tiny string
	for _, l := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(l, "tiny.en *") {
			tiny = l
		}
	}
	require.NotEmpty(t, tiny)
	assert.Contains(t, tiny, "2.0 kB")
	assert.Contains(t, tiny, filepath.Join(modelsDir, "ggml-tiny.en.bin"))
}

func TestModelsDownload_UnknownSize(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	t.Setenv("V2T_MODELS_DIR", filepath.Join(dir, "models"))

	Cmd.SetOut(io.Discard)
	Cmd.SetErr(io.Discard)
	Cmd.SetArgs([]string{"download", "gigantic"})
	err := Cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size is invalid")
	assert.NoDirExists(t, filepath.Join(dir, "models"))
}
