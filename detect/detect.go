// Package detect identifies the calibration frequency a recording was tuned
// to by matching its spectrum against every candidate note ladder.
package detect

import (
	"math"
	"math/cmplx"
	"time"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/retune/sound"
	"github.com/cwbudde/retune/tuning"
)

const (
	// analysisWindow bounds the transform to the leading part of the signal.
	analysisWindow = 100 * time.Second
	// Inputs shorter than padThreshold are silence-padded out to padTarget
	// before windowing.
	padThreshold = 101 * time.Second
	padTarget    = 120 * time.Second
)

// Result is the winning candidate and its aggregate spectral energy.
type Result struct {
	Frequency float64
	Score     float64
}

// Detector scores a fixed candidate grid against signal spectra.
type Detector struct {
	grid tuning.Grid
}

// New returns a detector over the given grid.
func New(grid tuning.Grid) *Detector {
	return &Detector{grid: grid}
}

// Analyze returns the best-matching calibration frequency for buf.
//
// The signal is padded and windowed per analysisSignal, transformed at the
// exact window length, and each candidate ladder is scored by summing the
// normalized magnitude at the nearest bin of each of its notes. Ladder notes
// beyond the spectrum (high octaves against a low sample rate) contribute
// zero. The scan runs in ascending candidate order and replaces the leader
// only on a strictly greater score, so ties resolve to the lowest candidate.
// A near-silent input yields a low-score winner rather than an error.
func (d *Detector) Analyze(buf *sound.Buffer) Result {
	mono := analysisSignal(buf)
	n := len(mono)
	if n == 0 || d.grid.Len() == 0 {
		return Result{}
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, mono)

	mag := make([]float64, len(coeffs))
	inv := 1.0 / float64(n)
	for i, c := range coeffs {
		mag[i] = cmplx.Abs(c) * inv
	}

	// Bin width comes from the original sample rate, not anything derived
	// from the padded signal.
	freqstep := float64(buf.SampleRate) / float64(n)

	best := Result{Score: math.Inf(-1)}
	for _, cand := range d.grid.Candidates() {
		var sum float64
		for _, note := range cand.Ladder {
			idx := int(math.Round(note / freqstep))
			if idx < 0 || idx >= len(mag) {
				continue
			}
			sum += mag[idx]
		}
		if sum > best.Score {
			best = Result{Frequency: cand.Frequency, Score: sum}
		}
	}
	return best
}

// analysisSignal pads short input with silence to padTarget, takes the
// leading analysis window, and down-mixes it to one channel.
func analysisSignal(buf *sound.Buffer) []float64 {
	work := buf
	if d := buf.Duration(); d < padThreshold {
		work = buf.Clone()
		work.AppendSilence(padTarget - d)
	}
	return work.Slice(analysisWindow).Mono()
}
