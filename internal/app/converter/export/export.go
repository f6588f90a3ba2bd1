package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"v2t/internal/app/model"
)

// SheetName is the worksheet written by ToExcel.
const SheetName = "Transcriptions"

// ToExcel writes one row per transcription to a new xlsx file at outputFilePath.
func ToExcel(transcriptions []model.Transcription, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"ID", "Last Conversion Time", "Video", "Audio", "Model Family", "Model",
		"Audio Duration (s)", "Transcription", "Error Message"} {
		headerRow.AddCell().Value = h
	}

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().SetInt64(t.ID)
		row.AddCell().Value = t.LastConversionTime.Format(time.RFC3339)
		row.AddCell().Value = t.VideoPath
		row.AddCell().Value = t.AudioPath
		row.AddCell().Value = t.ModelFamily
		row.AddCell().Value = t.ModelName
		row.AddCell().SetInt(t.AudioDuration)
		row.AddCell().Value = t.Transcription
		row.AddCell().Value = t.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}
