package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"v2t/internal/app/model"
)

// WriteWAV encodes samples as a 16-bit PCM WAV file at path.
func WriteWAV(t testing.TB, path string, sampleRate, channels int, samples []int) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav encoder: %v", err)
	}
	return path
}

// SineWAV writes a mono 16kHz sine tone of the given length to dir/name.
func SineWAV(t testing.TB, dir, name string, length time.Duration) string {
	t.Helper()
	n := int(length.Seconds() * 16000)
	samples := make([]int, n)
	for i := range samples {
		samples[i] = int(8000 * math.Sin(2*math.Pi*440*float64(i)/16000))
	}
	return WriteWAV(t, filepath.Join(dir, name), 16000, 1, samples)
}

// TouchFile creates an empty file at dir/name and returns its path.
func TouchFile(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("fake media"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", name, err)
	}
	return path
}

// SampleTranscriptions is history data for repository and export tests.
var SampleTranscriptions = []model.Transcription{
	{
		ID:                 1,
		VideoPath:          "/videos/lecture.mp4",
		AudioPath:          "/videos/lecture.wav",
		ModelFamily:        "whisper",
		ModelName:          "ggml-base.bin",
		AudioDuration:      1800,
		Transcription:      "Welcome to the lecture on distributed systems.",
		LastConversionTime: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		ID:                 2,
		VideoPath:          "/videos/interview.mov",
		AudioPath:          "/videos/interview.wav",
		ModelFamily:        "openai",
		ModelName:          "whisper-1",
		AudioDuration:      620,
		Transcription:      "Thanks for joining us today.",
		LastConversionTime: time.Date(2024, 1, 16, 14, 45, 0, 0, time.UTC),
	},
	{
		ID:                 3,
		VideoPath:          "/videos/broken.mp4",
		AudioPath:          "/videos/broken.wav",
		ModelFamily:        "whisper",
		ModelName:          "ggml-base.bin",
		LastConversionTime: time.Date(2024, 1, 17, 9, 15, 0, 0, time.UTC),
		HasError:           true,
		ErrorMessage:       "media conversion failed: ffmpeg exited with status 1",
	},
}
