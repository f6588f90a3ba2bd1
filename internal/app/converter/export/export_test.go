package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"v2t/internal/app/testutil"
)

func TestToExcel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, ToExcel(testutil.SampleTranscriptions, out))

	file, err := xlsx.OpenFile(out)
	require.NoError(t, err)
	sheet, ok := file.Sheet[SheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, len(testutil.SampleTranscriptions)+1)

	header := sheet.Rows[0].Cells
	assert.Equal(t, "ID", header[0].Value)
	assert.Equal(t, "Error Message", header[len(header)-1].Value)

	first := sheet.Rows[1].Cells
	assert.Equal(t, "1", first[0].Value)
	assert.Equal(t, testutil.SampleTranscriptions[0].LastConversionTime.Format(time.RFC3339), first[1].Value)
	assert.Equal(t, "/videos/lecture.mp4", first[2].Value)
	assert.Equal(t, "1800", first[6].Value)
	assert.Equal(t, "Welcome to the lecture on distributed systems.", first[7].Value)

	failed := sheet.Rows[3].Cells
	assert.Contains(t, failed[8].Value, "media conversion failed")
}

func TestToExcel_Empty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, ToExcel(nil, out))

	file, err := xlsx.OpenFile(out)
	require.NoError(t, err)
	assert.Len(t, file.Sheet[SheetName].Rows, 1)
}

func TestToExcel_BadPath(t *testing.T) {
	err := ToExcel(testutil.SampleTranscriptions, filepath.Join(t.TempDir(), "missing", "dir", "x.xlsx"))
	assert.Error(t, err)
}
