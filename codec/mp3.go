package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/cwbudde/retune/sound"
)

// decodeMP3 reads an MP3 stream. go-mp3 always emits 16-bit little-endian
// stereo frames at the stream's sample rate.
func decodeMP3(path string) (*sound.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("invalid mp3 file %s: %w", path, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 %s: %w", path, err)
	}

	const channels = 2
	n := len(raw) / 2
	out := &sound.Buffer{
		Data:       make([]float64, n),
		SampleRate: dec.SampleRate(),
		Channels:   channels,
	}
	for i := 0; i < n; i++ {
		out.Data[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768.0
	}
	return out, nil
}
