package model

import "time"

// Transcription is one row of the conversion history.
type Transcription struct {
	ID                 int64
	VideoPath          string
	AudioPath          string
	ModelFamily        string
	ModelName          string
	AudioDuration      int
	Transcription      string
	LastConversionTime time.Time
	HasError           bool
	ErrorMessage       string
}
