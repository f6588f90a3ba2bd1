package model

import "time"

// Result is what a model returns for one audio file.
type Result struct {
	Text     string
	Language string
	Duration time.Duration
	Segments []Segment
}

// Segment is a time-aligned piece of a Result.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}
