// Package pitch implements the playback-rate transform: the buffer's time
// base is reinterpreted by a frequency ratio, shifting pitch and duration
// together, then the result is resampled to the requested output rate. This
// is deliberately not a time-preserving pitch shift.
package pitch

import (
	"errors"
	"math"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"

	"github.com/cwbudde/retune/sound"
)

var (
	// ErrInvalidRatio indicates a non-positive or non-finite playback ratio.
	ErrInvalidRatio = errors.New("pitch: invalid playback ratio")
	// ErrInvalidRate indicates an invalid target sample rate.
	ErrInvalidRate = errors.New("pitch: invalid target sample rate")
	// ErrInvalidBuffer indicates a buffer without a usable rate or layout.
	ErrInvalidBuffer = errors.New("pitch: invalid input buffer")
)

// Shift reinterprets buf's sample rate as native*ratio without touching the
// samples, then resamples to targetRate. The new duration is the original
// divided by ratio. With ratio 1.0 and targetRate equal to the native rate
// the output samples equal the input samples.
func Shift(buf *sound.Buffer, ratio float64, targetRate int) (*sound.Buffer, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, ErrInvalidRatio
	}
	if targetRate <= 0 {
		return nil, ErrInvalidRate
	}
	if buf.SampleRate <= 0 || buf.Channels <= 0 {
		return nil, ErrInvalidBuffer
	}

	// Truncation matches the rate override of the original pipeline.
	reinterpreted := int(float64(buf.SampleRate) * ratio)
	if reinterpreted <= 0 {
		return nil, ErrInvalidRatio
	}

	if reinterpreted == targetRate {
		out := buf.Clone()
		out.SampleRate = targetRate
		return out, nil
	}

	channels := make([][]float64, buf.Channels)
	frames := math.MaxInt
	for c := range channels {
		r, err := dspresample.NewForRates(
			float64(reinterpreted),
			float64(targetRate),
			dspresample.WithQuality(dspresample.QualityBest),
		)
		if err != nil {
			return nil, err
		}
		channels[c] = r.Process(buf.Channel(c))
		if len(channels[c]) < frames {
			frames = len(channels[c])
		}
	}
	if frames == math.MaxInt {
		frames = 0
	}

	out := sound.New(targetRate, buf.Channels, frames)
	for c, data := range channels {
		for i := 0; i < frames; i++ {
			out.Data[i*buf.Channels+c] = data[i]
		}
	}
	return out, nil
}
