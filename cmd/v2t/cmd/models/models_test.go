package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"v2t/internal/downloader"
)

func TestPrintModels(t *testing.T) {
	installed := []downloader.InstalledModel{
		{Size: "base", Path: "/m/ggml-base.bin", Bytes: 147_951_465},
		{Size: "custom-q5", Path: "/m/ggml-custom-q5.bin", Bytes: 1000},
	}

	var out bytes.Buffer
	require.NoError(t, printModels(&out, installed, "base"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1+len(downloader.Sizes)+1)

	var base string
	for _, l := range lines {
		if strings.HasPrefix(l, "base *") {
			base = l
		}
	}
	require.NotEmpty(t, base, "current size is marked")
	assert.Contains(t, base, "148 MB")
	assert.Contains(t, base, "/m/ggml-base.bin")

	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "custom-q5"))
	assert.Contains(t, lines[len(lines)-1], "1.0 kB")
	assert.Contains(t, out.String(), "tiny ")
}
