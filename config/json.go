// Package config loads optional converter defaults from a JSON file and
// applies them on top of built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/retune/convert"
)

// File is the JSON schema for converter defaults. All fields are optional.
type File struct {
	Output     *string `json:"output"`
	Format     *string `json:"format"`
	Bitrate    *string `json:"bitrate"`
	SampleRate *int    `json:"sample_rate"`
}

// LoadJSON reads a defaults file and applies it on top of opts.
func LoadJSON(path string, opts convert.Options) (convert.Options, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return opts, err
	}

	if err := Apply(&opts, &f); err != nil {
		return opts, err
	}
	return opts, nil
}

// Apply applies a parsed defaults file onto an existing options value.
func Apply(dst *convert.Options, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination options")
	}
	if f == nil {
		return nil
	}

	if f.Output != nil {
		dst.OutputDir = *f.Output
	}
	if f.Format != nil {
		if *f.Format == "" {
			return fmt.Errorf("format must not be empty")
		}
		dst.Format = *f.Format
	}
	if f.Bitrate != nil {
		dst.Bitrate = *f.Bitrate
	}
	if f.SampleRate != nil {
		if *f.SampleRate <= 0 {
			return fmt.Errorf("sample_rate must be > 0")
		}
		dst.SampleRate = *f.SampleRate
	}
	return nil
}
