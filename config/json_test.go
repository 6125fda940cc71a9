package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/retune/convert"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retune.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadJSONAppliesFields(t *testing.T) {
	path := writeConfig(t, `{"output": "out", "format": "wav", "bitrate": "192k", "sample_rate": 44100}`)

	opts, err := LoadJSON(path, convert.Options{})
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if opts.OutputDir != "out" || opts.Format != "wav" || opts.Bitrate != "192k" || opts.SampleRate != 44100 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestLoadJSONPartialKeepsRest(t *testing.T) {
	path := writeConfig(t, `{"bitrate": "128k"}`)

	opts, err := LoadJSON(path, convert.Options{Format: "ogg", SampleRate: 22050})
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if opts.Bitrate != "128k" {
		t.Fatalf("expected bitrate override, got %q", opts.Bitrate)
	}
	if opts.Format != "ogg" || opts.SampleRate != 22050 {
		t.Fatalf("untouched fields changed: %+v", opts)
	}
}

func TestLoadJSONRejectsBadValues(t *testing.T) {
	cases := []string{
		`{"sample_rate": 0}`,
		`{"sample_rate": -1}`,
		`{"format": ""}`,
		`{"format": `,
	}
	for _, body := range cases {
		path := writeConfig(t, body)
		if _, err := LoadJSON(path, convert.Options{}); err == nil {
			t.Errorf("expected error for config %q", body)
		}
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "absent.json"), convert.Options{}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
