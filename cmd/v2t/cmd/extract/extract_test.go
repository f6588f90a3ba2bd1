package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	outputPath = ""
	t.Cleanup(func() { outputPath = "" })

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(io.Discard)
	Cmd.SetArgs(append([]string{}, args...))
	err := Cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExtract(t *testing.T) {
	testutil.SkipIfNoShell(t)
	dir := testutil.IsolateConfig(t)
	ffmpeg := testutil.FakeFFmpeg(t)
	t.Setenv("V2T_FFMPEG", ffmpeg)
	video := testutil.TouchFile(t, dir, "talk.mkv")

	t.Run("derived path", func(t *testing.T) {
		out, err := execute(t, video)
		require.NoError(t, err)
		want := filepath.Join(dir, "talk.wav")
		assert.Equal(t, want+"\n", out)
		data, err := os.ReadFile(want)
		require.NoError(t, err)
		assert.Equal(t, "RIFF-fake-wav", string(data))
	})

	t.Run("explicit output", func(t *testing.T) {
		want := filepath.Join(dir, "custom.wav")
		out, err := execute(t, video, "-o", want)
		require.NoError(t, err)
		assert.Equal(t, want+"\n", out)
		assert.FileExists(t, want)
	})

	t.Run("unreadable input", func(t *testing.T) {
		_, err := execute(t, filepath.Join(dir, "missing.mkv"))
		var mce *apperrors.MediaConversionError
		require.True(t, errors.As(err, &mce))
		assert.Equal(t, 1, mce.ExitCode)
	})

	assert.Len(t, testutil.Invocations(t, ffmpeg), 3)
}
