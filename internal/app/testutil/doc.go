// Package testutil provides test helpers for the v2t packages.
//
// It contains:
//
//   - fake ffmpeg/ffprobe/whisper-cli shell scripts written to a temp dir (tools.go)
//   - WAV fixtures encoded with go-audio/wav (fixtures.go)
//   - testify mocks for api.Model and repository.TranscriptionDAO (mock_*.go)
//
// The shell fakes need /bin/sh; tests that use them call SkipIfNoShell first.
package testutil
