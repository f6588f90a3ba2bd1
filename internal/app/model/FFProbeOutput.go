package model

import (
	"math"
	"strconv"
)

type FFProbeOutput struct {
	Streams []FFProbeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type FFProbeStream struct {
	CodecType     string `json:"codec_type"`
	CodecName     string `json:"codec_name"`
	SampleRate    int    `json:"sample_rate,string"`
	Channels      int    `json:"channels"`
	BitsPerSample int    `json:"bits_per_sample"`
}

// AudioStream returns the first audio stream, if any.
func (o FFProbeOutput) AudioStream() (FFProbeStream, bool) {
	for _, s := range o.Streams {
		if s.CodecType == "audio" {
			return s, true
		}
	}
	return FFProbeStream{}, false
}

// DurationSeconds returns the container duration rounded to whole seconds.
func (o FFProbeOutput) DurationSeconds() (int, error) {
	d, err := strconv.ParseFloat(o.Format.Duration, 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(d)), nil
}
