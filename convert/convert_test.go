package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"

	"github.com/cwbudde/retune/codec"
	"github.com/cwbudde/retune/sound"
	"github.com/cwbudde/retune/tuning"
)

const testRate = 8000

// writeTone writes a mono 440 Hz test wav of the given length in seconds.
func writeTone(t *testing.T, path string, seconds int) {
	t.Helper()

	gen := signal.NewGenerator(core.WithSampleRate(testRate))
	data, err := gen.Sine(440.0, 0.5, seconds*testRate)
	if err != nil {
		t.Fatalf("generating sine: %v", err)
	}

	buf := sound.New(testRate, 1, seconds*testRate)
	copy(buf.Data, data)
	if err := codec.Encode(buf, path, "wav", ""); err != nil {
		t.Fatalf("writing tone fixture: %v", err)
	}
}

// testConverter keeps everything in the wav domain so tests run without
// external binaries.
func testConverter(outDir string) *Converter {
	return New(Options{
		OutputDir:  outDir,
		Format:     "wav",
		SampleRate: testRate,
	})
}

func TestSupported(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"song.Flac", true},
		{"song.ogg", true},
		{"song.wav", true},
		{"song.txt", false},
		{"song", false},
		{"song.mp3.bak", false},
	}
	for _, tc := range cases {
		if got := Supported(tc.path); got != tc.want {
			t.Errorf("Supported(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	c := New(Options{})
	opts := c.Options()
	if opts.Format != "mp3" || opts.Bitrate != "320k" || opts.SampleRate != 48000 || opts.TargetFrequency != 432.0 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestOutputPath(t *testing.T) {
	c := New(Options{Format: "mp3"})
	got := c.OutputPath(filepath.Join("music", "My Song.flac"))
	want := filepath.Join("music", "432hz_My Song.mp3")
	if got != want {
		t.Fatalf("expected output path %q, got %q", want, got)
	}

	c = New(Options{Format: "wav", OutputDir: "out"})
	got = c.OutputPath(filepath.Join("music", "tune.mp3"))
	want = filepath.Join("out", "432hz_tune.wav")
	if got != want {
		t.Fatalf("expected output path %q, got %q", want, got)
	}
}

func TestFileUnsupportedExtension(t *testing.T) {
	job := testConverter(t.TempDir()).File("notes.txt")
	if job.Status != StatusSkippedUnsupported {
		t.Fatalf("expected %v, got %v", StatusSkippedUnsupported, job.Status)
	}
}

func TestFileConvertsAndSkipsSecondRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tone.wav")
	writeTone(t, input, 1)

	c := testConverter(dir)

	job := c.File(input)
	if job.Status != StatusConverted {
		t.Fatalf("expected %v, got %v (err: %v)", StatusConverted, job.Status, job.Err)
	}
	if job.Output != filepath.Join(dir, "432hz_tone.wav") {
		t.Fatalf("unexpected output path: %s", job.Output)
	}
	if job.Detected < tuning.GridMin || job.Detected > tuning.GridMax {
		t.Fatalf("detected tuning %v outside the candidate range", job.Detected)
	}
	first, err := os.ReadFile(job.Output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	// Second run must skip and leave the output untouched.
	again := c.File(input)
	if again.Status != StatusSkippedExists {
		t.Fatalf("expected %v, got %v", StatusSkippedExists, again.Status)
	}
	second, err := os.ReadFile(job.Output)
	if err != nil {
		t.Fatalf("re-reading output: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("output changed across an idempotent skip")
	}
}

func TestDirectorySelection(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "keep.wav"), 1)
	writeTone(t, filepath.Join(dir, "432hz_done.wav"), 1)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	files, err := listConvertible(dir)
	if err != nil {
		t.Fatalf("listing directory: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.wav" {
		t.Fatalf("expected only keep.wav, got %v", files)
	}
}

func TestDirectoryContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("not a riff"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	writeTone(t, filepath.Join(dir, "good.wav"), 1)

	jobs, err := testConverter(dir).Directory(dir)
	if err != nil {
		t.Fatalf("directory conversion failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	byName := map[string]Job{}
	for _, j := range jobs {
		byName[filepath.Base(j.Input)] = j
	}
	if byName["broken.wav"].Status != StatusFailed {
		t.Fatalf("expected broken.wav to fail, got %v", byName["broken.wav"].Status)
	}
	if byName["good.wav"].Status != StatusConverted {
		t.Fatalf("expected good.wav to convert, got %v (err: %v)",
			byName["good.wav"].Status, byName["good.wav"].Err)
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusConverted:          "converted",
		StatusSkippedExists:      "skipped (exists)",
		StatusSkippedUnsupported: "skipped (unsupported)",
		StatusFailed:             "failed",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
