// Package sound defines the sample buffer passed between pipeline stages:
// interleaved float64 samples normalized to [-1, 1] plus rate and channel
// layout. Each stage owns the buffer it holds; use Clone before mutating a
// buffer that is still needed elsewhere.
package sound

import "time"

// Buffer is a decoded block of audio.
type Buffer struct {
	// Data holds interleaved samples, Channels per frame.
	Data       []float64
	SampleRate int
	Channels   int
}

// New returns a zero-filled buffer with the given frame count.
func New(sampleRate, channels, frames int) *Buffer {
	if frames < 0 {
		frames = 0
	}
	return &Buffer{
		Data:       make([]float64, frames*channels),
		SampleRate: sampleRate,
		Channels:   channels,
	}
}

// Silence returns a zero-filled buffer of duration d.
func Silence(sampleRate, channels int, d time.Duration) *Buffer {
	return New(sampleRate, channels, framesFor(d, sampleRate))
}

// Frames returns the number of sample frames.
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Duration returns the playback time at the buffer's sample rate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(int64(b.Frames()) * int64(time.Second) / int64(b.SampleRate))
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Data:       make([]float64, len(b.Data)),
		SampleRate: b.SampleRate,
		Channels:   b.Channels,
	}
	copy(out.Data, b.Data)
	return out
}

// AppendSilence extends the buffer by d of zero samples.
func (b *Buffer) AppendSilence(d time.Duration) {
	n := framesFor(d, b.SampleRate) * b.Channels
	b.Data = append(b.Data, make([]float64, n)...)
}

// Slice returns a copy of the leading d of audio. A duration at or beyond
// the end returns a copy of the whole buffer.
func (b *Buffer) Slice(d time.Duration) *Buffer {
	frames := framesFor(d, b.SampleRate)
	if frames > b.Frames() {
		frames = b.Frames()
	}

	out := New(b.SampleRate, b.Channels, frames)
	copy(out.Data, b.Data[:frames*b.Channels])
	return out
}

// Mono returns a single-channel down-mix, averaging across channels.
func (b *Buffer) Mono() []float64 {
	if b.Channels == 1 {
		out := make([]float64, len(b.Data))
		copy(out, b.Data)
		return out
	}

	frames := b.Frames()
	out := make([]float64, frames)
	inv := 1.0 / float64(b.Channels)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < b.Channels; c++ {
			sum += b.Data[i*b.Channels+c]
		}
		out[i] = sum * inv
	}
	return out
}

// Channel returns a copy of one channel's samples.
func (b *Buffer) Channel(ch int) []float64 {
	frames := b.Frames()
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		out[i] = b.Data[i*b.Channels+ch]
	}
	return out
}

func framesFor(d time.Duration, sampleRate int) int {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(int64(d) * int64(sampleRate) / int64(time.Second))
}
