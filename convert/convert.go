// Package convert orchestrates the conversion pipeline: decode, tuning
// detection, playback-rate correction, encode. Per-file failures are
// reported as job results and never abort a batch.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/schollz/progressbar/v3"

	"github.com/cwbudde/retune/codec"
	"github.com/cwbudde/retune/detect"
	"github.com/cwbudde/retune/pitch"
	"github.com/cwbudde/retune/tuning"
)

// Status classifies the outcome of one file conversion.
type Status int

const (
	StatusConverted Status = iota
	StatusSkippedExists
	StatusSkippedUnsupported
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusSkippedExists:
		return "skipped (exists)"
	case StatusSkippedUnsupported:
		return "skipped (unsupported)"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// outputPrefix marks converted files and keeps batch runs from picking them
// up again.
const outputPrefix = "432hz_"

var supportedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".aac":  true,
	".m4a":  true,
	".wma":  true,
	".ogg":  true,
}

// Supported reports whether path carries a supported audio extension. The
// check is case-insensitive and looks at the filename only.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Options configures a Converter. Zero fields fall back to the defaults
// noted per field.
type Options struct {
	// OutputDir receives converted files; empty means alongside the input.
	OutputDir string
	// Format is the target container (default "mp3").
	Format string
	// Bitrate is the target bitrate for lossy formats (default "320k").
	Bitrate string
	// SampleRate is the output sample rate in Hz (default 48000).
	SampleRate int
	// TargetFrequency is the tuning to correct to (default 432.0).
	TargetFrequency float64
}

func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = "mp3"
	}
	if o.Bitrate == "" {
		o.Bitrate = "320k"
	}
	if o.SampleRate <= 0 {
		o.SampleRate = 48000
	}
	if o.TargetFrequency <= 0 {
		o.TargetFrequency = 432.0
	}
	return o
}

// Job is the result of one file conversion.
type Job struct {
	Input    string
	Output   string
	Detected float64
	Status   Status
	Err      error
}

func (j Job) fail(err error) Job {
	j.Status = StatusFailed
	j.Err = err
	fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", j.Input, err)
	return j
}

// Converter drives single files and directories through the pipeline.
type Converter struct {
	opts     Options
	detector *detect.Detector
}

// New builds a converter; the candidate grid is constructed once here and
// reused for every file.
func New(opts Options) *Converter {
	return &Converter{
		opts:     opts.withDefaults(),
		detector: detect.New(tuning.NewGrid()),
	}
}

// Options returns the effective configuration after defaults.
func (c *Converter) Options() Options {
	return c.opts
}

// OutputPath returns the output file location for an input path:
// <outdir>/432hz_<stem>.<format>, with outdir defaulting to the input's own
// directory.
func (c *Converter) OutputPath(input string) string {
	dir := c.opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, outputPrefix+stem+"."+c.opts.Format)
}

// File converts one file. All outcomes, including failures, come back in
// the job; nothing is raised.
func (c *Converter) File(path string) Job {
	job := Job{Input: path}

	if !Supported(path) {
		fmt.Printf("Unsupported format, skipping: %s\n", path)
		job.Status = StatusSkippedUnsupported
		return job
	}

	job.Output = c.OutputPath(path)
	if _, err := os.Stat(job.Output); err == nil {
		fmt.Printf("Output already exists, skipping: %s\n", job.Output)
		job.Status = StatusSkippedExists
		return job
	}

	fmt.Printf("Converting: %s\n", describe(path))

	buf, err := codec.Decode(path)
	if err != nil {
		return job.fail(fmt.Errorf("decode: %w", err))
	}

	res := c.detector.Analyze(buf)
	job.Detected = res.Frequency
	fmt.Printf("Detected tuning: %.1f Hz\n", res.Frequency)

	ratio := c.opts.TargetFrequency / res.Frequency
	fmt.Printf("Applying playback ratio %.6f\n", ratio)

	shifted, err := pitch.Shift(buf, ratio, c.opts.SampleRate)
	if err != nil {
		return job.fail(fmt.Errorf("resample: %w", err))
	}

	if err := codec.Encode(shifted, job.Output, c.opts.Format, c.opts.Bitrate); err != nil {
		return job.fail(fmt.Errorf("encode: %w", err))
	}

	fmt.Printf("Saved: %s\n", job.Output)
	job.Status = StatusConverted
	return job
}

// Directory converts every supported file directly inside dir, in directory
// order. Files already carrying the output prefix are left alone. One
// file's failure never stops the batch.
func (c *Converter) Directory(dir string) ([]Job, error) {
	files, err := listConvertible(dir)
	if err != nil {
		return nil, err
	}

	fmt.Printf("Found %d files to convert in %s\n", len(files), dir)
	bar := progressbar.Default(int64(len(files)), "converting")

	jobs := make([]Job, 0, len(files))
	for i, path := range files {
		fmt.Printf("Converting file %d of %d: %s\n", i+1, len(files), filepath.Base(path))
		jobs = append(jobs, c.File(path))
		_ = bar.Add(1)
	}
	return jobs, nil
}

// listConvertible returns the supported, not-yet-converted files directly
// inside dir.
func listConvertible(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, outputPrefix) {
			continue
		}
		if !Supported(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// describe augments a path with embedded title/artist tags when present.
func describe(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return path
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return path
	}

	title := strings.TrimSpace(m.Title())
	artist := strings.TrimSpace(m.Artist())
	switch {
	case title == "":
		return path
	case artist == "":
		return fmt.Sprintf("%s (%s)", path, title)
	default:
		return fmt.Sprintf("%s (%s - %s)", path, artist, title)
	}
}
