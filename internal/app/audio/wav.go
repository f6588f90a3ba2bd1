package audio

import (
	"errors"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// PCM holds decoded samples normalized to [-1,1]. Samples are interleaved when Channels > 1.
type PCM struct {
	Samples    []float32
	SampleRate int
	Channels   int
	BitDepth   int
}

// ReadWAV decodes the WAV file at path.
func ReadWAV(path string) (*PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeWAV(f)
}

// DecodeWAV decodes a WAV stream into float32 PCM.
func DecodeWAV(r io.ReadSeeker) (*PCM, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, err
	}
	if buf == nil {
		return nil, errors.New("empty wav buffer")
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(dec.BitDepth)
	}
	if bitDepth <= 0 {
		bitDepth = TargetBitDepth
	}
	maxVal := float32(int(1) << (bitDepth - 1))
	out := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float32(v) / maxVal
	}

	sr := int(dec.SampleRate)
	if sr == 0 && buf.Format != nil {
		sr = buf.Format.SampleRate
	}
	channels := int(dec.NumChans)
	if channels == 0 && buf.Format != nil {
		channels = buf.Format.NumChannels
	}
	if channels == 0 {
		channels = 1
	}

	return &PCM{
		Samples:    out,
		SampleRate: sr,
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}

// Mono16k returns the samples of p downmixed to mono and resampled to 16kHz.
func (p *PCM) Mono16k() []float32 {
	mono := DownmixToMono(p.Samples, p.Channels)
	return ResampleLinear(mono, p.SampleRate, TargetSampleRate)
}

// DownmixToMono averages interleaved channels.
func DownmixToMono(samples []float32, channels int) []float32 {
	if channels <= 1 {
		return samples
	}
	out := make([]float32, len(samples)/channels)
	for i := range out {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += samples[i*channels+c]
		}
		out[i] = sum / float32(channels)
	}
	return out
}

// ResampleLinear resamples PCM32F from inRate to outRate using linear interpolation.
func ResampleLinear(samples []float32, inRate, outRate int) []float32 {
	if inRate <= 0 || outRate <= 0 || inRate == outRate || len(samples) == 0 {
		return samples
	}
	ratio := float64(outRate) / float64(inRate)
	outLen := int(float64(len(samples)) * ratio)
	if outLen <= 1 {
		outLen = 1
	}
	out := make([]float32, outLen)
	for i := 0; i < outLen; i++ {
		srcPos := float64(i) / ratio
		i0 := int(srcPos)
		if i0 >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(srcPos - float64(i0))
		out[i] = samples[i0] + (samples[i0+1]-samples[i0])*frac
	}
	return out
}
