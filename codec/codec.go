// Package codec is the decode/encode boundary of the pipeline. WAV and MP3
// are handled natively; every other supported container is bridged through
// an ffmpeg subprocess and a temporary WAV file.
package codec

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cwbudde/retune/sound"
)

// Decode reads an audio file into a sample buffer.
func Decode(path string) (*sound.Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(path)
	case ".mp3":
		return decodeMP3(path)
	default:
		return decodeFFmpeg(path)
	}
}

// Encode writes buf to path in the target format. bitrate is an ffmpeg-style
// value such as "320k"; it is ignored for wav output.
func Encode(buf *sound.Buffer, path, format, bitrate string) error {
	if strings.EqualFold(format, "wav") {
		return encodeWAV(buf, path)
	}
	return encodeFFmpeg(buf, path, bitrate)
}

func decodeFFmpeg(path string) (*sound.Buffer, error) {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	tmp, err := tempWAVPath()
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	if out, err := runCmd(bin, "-hide_banner", "-loglevel", "error", "-y", "-i", path, tmp); err != nil {
		return nil, fmt.Errorf("ffmpeg decode of %s: %v: %s", filepath.Base(path), err, strings.TrimSpace(out))
	}
	return decodeWAV(tmp)
}

func encodeFFmpeg(buf *sound.Buffer, path, bitrate string) error {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	tmp, err := tempWAVPath()
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := encodeWAV(buf, tmp); err != nil {
		return err
	}

	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", tmp}
	if bitrate != "" {
		args = append(args, "-b:a", bitrate)
	}
	args = append(args, path)

	if out, err := runCmd(bin, args...); err != nil {
		return fmt.Errorf("ffmpeg encode of %s: %v: %s", filepath.Base(path), err, strings.TrimSpace(out))
	}
	return nil
}

// tempWAVPath reserves a temp file with a .wav suffix so ffmpeg picks the
// container from the extension.
func tempWAVPath() (string, error) {
	f, err := os.CreateTemp("", "retune-*.wav")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

func runCmd(bin string, args ...string) (string, error) {
	cmd := exec.Command(bin, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
