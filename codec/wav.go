package codec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/cwbudde/retune/sound"
)

func decodeWAV(path string) (*sound.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid wav buffer: %s", path)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := 1.0 / float64(int(1)<<(bitDepth-1))

	out := &sound.Buffer{
		Data:       make([]float64, len(buf.Data)),
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}
	for i, v := range buf.Data {
		out.Data[i] = float64(v) * scale
	}
	return out, nil
}

func encodeWAV(buf *sound.Buffer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, buf.SampleRate, 16, buf.Channels, 1)
	defer enc.Close()

	data := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		// Resampling overshoot must not wrap in the 16-bit conversion.
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		data[i] = float32(v)
	}

	wbuf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  buf.SampleRate,
			NumChannels: buf.Channels,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(wbuf)
}
