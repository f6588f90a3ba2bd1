package converter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"v2t/internal/app/api/provider"
	apperrors "v2t/internal/app/errors"
	"v2t/internal/app/model"
	"v2t/internal/app/testutil"
)

type mockTranscriber struct {
	mock.Mock
}

func (m *mockTranscriber) ExtractAudio(ctx context.Context, videoPath, audioPath string) (string, error) {
	args := m.Called(ctx, videoPath, audioPath)
	return args.String(0), args.Error(1)
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	args := m.Called(ctx, audioPath)
	return args.String(0), args.Error(1)
}

func (m *mockTranscriber) Family() provider.Family { return provider.FamilyWhisperCpp }

func (m *mockTranscriber) ModelName() string { return "ggml-base.bin" }

type fakeProber struct {
	seconds   int
	err       error
	notTarget bool
	probeErr  error
}

func (f fakeProber) Duration(context.Context, string) (int, error) {
	return f.seconds, f.err
}

func (f fakeProber) IsTargetFormat(context.Context, string) (bool, error) {
	return !f.notTarget, f.probeErr
}

func isRow(pred func(*model.Transcription) bool) interface{} {
	return mock.MatchedBy(pred)
}

func TestConverter_Convert_Video(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	video := testutil.TouchFile(t, dir, "talk.mp4")
	audioPath := testutil.TouchFile(t, dir, "talk.wav")

	tr := &mockTranscriber{}
	tr.On("ExtractAudio", mock.Anything, video, "").Return(audioPath, nil)
	tr.On("Transcribe", mock.Anything, audioPath).Return("hello everyone", nil)

	dao := &testutil.MockTranscriptionDAO{}
	dao.On("Record", mock.Anything, isRow(func(r *model.Transcription) bool {
		return !r.HasError && r.Transcription == "hello everyone" && r.AudioDuration == 42 &&
			r.ModelFamily == "whisper_cpp" && r.ModelName == "ggml-base.bin" && !r.LastConversionTime.IsZero()
	})).Return(nil).Once()

	c := NewConverter(tr, fakeProber{seconds: 42}, dao, ProgressConfig{}, nil)
	row, err := c.Convert(ctx, video, Options{})
	require.NoError(t, err)

	assert.Equal(t, "hello everyone", row.Transcription)
	assert.Equal(t, audioPath, row.AudioPath)
	assert.NoFileExists(t, audioPath, "extracted audio is removed unless kept")
	tr.AssertExpectations(t)
	dao.AssertExpectations(t)
}

func TestConverter_Convert_KeepAudio(t *testing.T) {
	dir := t.TempDir()
	video := testutil.TouchFile(t, dir, "talk.mp4")
	out := testutil.TouchFile(t, dir, "custom.wav")

	tr := &mockTranscriber{}
	tr.On("ExtractAudio", mock.Anything, video, out).Return(out, nil)
	tr.On("Transcribe", mock.Anything, out).Return("kept", nil)

	c := NewConverter(tr, fakeProber{seconds: 1}, nil, ProgressConfig{}, nil)
	row, err := c.Convert(context.Background(), video, Options{AudioPath: out, KeepAudio: true})
	require.NoError(t, err)
	assert.Equal(t, "kept", row.Transcription)
	assert.FileExists(t, out)
}

func TestConverter_Convert_ExplicitAudioPathKept(t *testing.T) {
	dir := t.TempDir()
	video := testutil.TouchFile(t, dir, "talk.mp4")
	out := filepath.Join(dir, "wanted.wav")

	tr := &mockTranscriber{}
	tr.On("ExtractAudio", mock.Anything, video, out).Return(testutil.TouchFile(t, dir, "wanted.wav"), nil)
	tr.On("Transcribe", mock.Anything, out).Return("kept without flag", nil)

	c := NewConverter(tr, fakeProber{seconds: 2}, nil, ProgressConfig{}, nil)
	row, err := c.Convert(context.Background(), video, Options{AudioPath: out})
	require.NoError(t, err)
	assert.Equal(t, out, row.AudioPath)
	assert.FileExists(t, out, "an explicit audio path is never removed")
}

func TestConverter_Convert_WAVNotTargetFormat(t *testing.T) {
	dir := t.TempDir()
	wav := testutil.TouchFile(t, dir, "stereo.wav")
	reencoded := filepath.Join(dir, "stereo.16k.wav")

	tr := &mockTranscriber{}
	tr.On("ExtractAudio", mock.Anything, wav, reencoded).Return(testutil.TouchFile(t, dir, "stereo.16k.wav"), nil)
	tr.On("Transcribe", mock.Anything, reencoded).Return("resampled", nil)

	c := NewConverter(tr, fakeProber{seconds: 4, notTarget: true}, nil, ProgressConfig{}, nil)
	row, err := c.Convert(context.Background(), wav, Options{})
	require.NoError(t, err)
	assert.Equal(t, "resampled", row.Transcription)
	assert.Equal(t, reencoded, row.AudioPath)
	assert.FileExists(t, wav)
	assert.NoFileExists(t, reencoded, "the re-encoded copy is removed like any derived track")
}

func TestConverter_Convert_WAVProbeFails(t *testing.T) {
	wav := testutil.TouchFile(t, t.TempDir(), "garbage.wav")
	probeErr := &apperrors.MediaConversionError{Tool: "ffprobe", ExitCode: 1, Err: errors.New("invalid data")}

	tr := &mockTranscriber{}
	c := NewConverter(tr, fakeProber{probeErr: probeErr}, nil, ProgressConfig{}, nil)
	row, err := c.Convert(context.Background(), wav, Options{})
	assert.True(t, errors.Is(err, apperrors.ErrMediaConversion))
	assert.True(t, row.HasError)
	tr.AssertNotCalled(t, "ExtractAudio", mock.Anything, mock.Anything, mock.Anything)
	tr.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestConverter_Convert_WAVInput(t *testing.T) {
	wav := testutil.TouchFile(t, t.TempDir(), "speech.wav")

	tr := &mockTranscriber{}
	tr.On("Transcribe", mock.Anything, wav).Return("direct", nil)

	c := NewConverter(tr, fakeProber{seconds: 3}, nil, ProgressConfig{}, nil)
	row, err := c.Convert(context.Background(), wav, Options{})
	require.NoError(t, err)
	assert.Equal(t, "direct", row.Transcription)
	assert.FileExists(t, wav, "input audio is never removed")
	tr.AssertNotCalled(t, "ExtractAudio", mock.Anything, mock.Anything, mock.Anything)
}

func TestConverter_Convert_Failures(t *testing.T) {
	ctx := context.Background()
	video := testutil.TouchFile(t, t.TempDir(), "broken.mp4")

	t.Run("extraction", func(t *testing.T) {
		convErr := &apperrors.MediaConversionError{Tool: "ffmpeg", ExitCode: 1, Stderr: "Invalid data"}
		tr := &mockTranscriber{}
		tr.On("ExtractAudio", mock.Anything, video, "").Return("", convErr)

		dao := &testutil.MockTranscriptionDAO{}
		dao.On("Record", mock.Anything, isRow(func(r *model.Transcription) bool {
			return r.HasError && r.ErrorMessage == convErr.Error()
		})).Return(nil).Once()

		c := NewConverter(tr, fakeProber{}, dao, ProgressConfig{}, nil)
		row, err := c.Convert(ctx, video, Options{})
		assert.True(t, errors.Is(err, apperrors.ErrMediaConversion))
		require.NotNil(t, row)
		assert.True(t, row.HasError)
		tr.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
		dao.AssertExpectations(t)
	})

	t.Run("duration", func(t *testing.T) {
		audioPath := testutil.TouchFile(t, t.TempDir(), "a.wav")
		tr := &mockTranscriber{}
		tr.On("ExtractAudio", mock.Anything, video, "").Return(audioPath, nil)

		c := NewConverter(tr, fakeProber{err: errors.New("ffprobe: N/A")}, nil, ProgressConfig{}, nil)
		row, err := c.Convert(ctx, video, Options{})
		assert.Error(t, err)
		assert.Equal(t, audioPath, row.AudioPath)
	})

	t.Run("transcription", func(t *testing.T) {
		audioPath := testutil.TouchFile(t, t.TempDir(), "a.wav")
		transErr := &apperrors.TranscriptionError{AudioPath: audioPath, Err: errors.New("decode")}
		tr := &mockTranscriber{}
		tr.On("ExtractAudio", mock.Anything, video, "").Return(audioPath, nil)
		tr.On("Transcribe", mock.Anything, audioPath).Return("", transErr)

		dao := &testutil.MockTranscriptionDAO{}
		dao.On("Record", mock.Anything, isRow(func(r *model.Transcription) bool {
			return r.HasError && r.AudioDuration == 7
		})).Return(nil).Once()

		c := NewConverter(tr, fakeProber{seconds: 7}, dao, ProgressConfig{}, nil)
		_, err := c.Convert(ctx, video, Options{})
		assert.True(t, errors.Is(err, apperrors.ErrTranscription))
		assert.FileExists(t, audioPath, "audio is kept when transcription fails")
		dao.AssertExpectations(t)
	})
}

func TestConverter_RecordErrorDoesNotFail(t *testing.T) {
	wav := testutil.TouchFile(t, t.TempDir(), "speech.wav")
	tr := &mockTranscriber{}
	tr.On("Transcribe", mock.Anything, wav).Return("text", nil)
	dao := &testutil.MockTranscriptionDAO{}
	dao.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	c := NewConverter(tr, fakeProber{}, dao, ProgressConfig{}, nil)
	row, err := c.Convert(context.Background(), wav, Options{})
	require.NoError(t, err)
	assert.Equal(t, "text", row.Transcription)
}

func TestConverter_Progress(t *testing.T) {
	wav := testutil.TouchFile(t, t.TempDir(), "speech.wav")
	tr := &mockTranscriber{}
	tr.On("Transcribe", mock.Anything, wav).Return("text", nil)

	var out bytes.Buffer
	c := NewConverter(tr, fakeProber{seconds: 1}, nil, ProgressConfig{Enabled: true, Writer: &out}, nil)
	for i := 0; i < 2; i++ {
		row, err := c.Convert(context.Background(), wav, Options{})
		require.NoError(t, err)
		assert.Equal(t, "text", row.Transcription)
	}
	c.progress.Shutdown()
}

func TestConverter_CloseLeavesDependencies(t *testing.T) {
	tr := &mockTranscriber{}
	dao := &testutil.MockTranscriptionDAO{}

	c := NewConverter(tr, fakeProber{}, dao, ProgressConfig{Enabled: true, Writer: &bytes.Buffer{}}, nil)
	assert.NoError(t, c.Close())
	tr.AssertNotCalled(t, "Close")
	dao.AssertNotCalled(t, "Close")
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTTY(f))
	assert.True(t, ShouldShowProgress(true))
}

func TestProgressBar_Disabled(t *testing.T) {
	pm := NewProgressManager(ProgressConfig{})
	bar := pm.CreateBar(3, "noop")
	bar.Increment()
	bar.Abort()
	pm.Wait()
	pm.Shutdown()
}
