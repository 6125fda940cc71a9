// retune432 corrects the tuning of audio recordings to 432 Hz. It accepts a
// single file, a directory, or (with -download) comma-separated URLs.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/retune/config"
	"github.com/cwbudde/retune/convert"
	"github.com/cwbudde/retune/download"
)

func main() {
	output := flag.String("o", "", "Output directory (default: alongside the input)")
	format := flag.String("f", "mp3", "Output format (mp3, wav, flac, ...)")
	bitrate := flag.String("b", "320k", "Output bitrate")
	sampleRate := flag.Int("s", 48000, "Output sample rate in Hz")
	urlMode := flag.Bool("download", false, "Treat the input as comma-separated URL(s), fetched via yt-dlp")
	configPath := flag.String("config", "", "Optional JSON defaults file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file|directory|urls>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Built-in defaults, then the config file, then explicit flags.
	opts := convert.Options{}
	if *configPath != "" {
		loaded, err := config.LoadJSON(*configPath, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config %q: %v\n", *configPath, err)
			os.Exit(1)
		}
		opts = loaded
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["o"] || opts.OutputDir == "" {
		opts.OutputDir = *output
	}
	if set["f"] || opts.Format == "" {
		opts.Format = *format
	}
	if set["b"] || opts.Bitrate == "" {
		opts.Bitrate = *bitrate
	}
	if set["s"] || opts.SampleRate == 0 {
		opts.SampleRate = *sampleRate
	}

	if err := run(flag.Arg(0), opts, *urlMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input string, opts convert.Options, urlMode bool) error {
	if urlMode {
		return runURLs(input, opts)
	}

	conv := convert.New(opts)

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("%q is not an existing file, directory, or URL (use -download for URLs)", input)
	}
	if info.IsDir() {
		_, err := conv.Directory(input)
		return err
	}
	conv.File(input)
	return nil
}

func runURLs(input string, opts convert.Options) error {
	// Downloads land in a scratch directory that is removed on every exit
	// path; converted files must therefore go elsewhere.
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	conv := convert.New(opts)

	tempDir, err := os.MkdirTemp("", "retune-downloads-")
	if err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	var urls []string
	for _, u := range strings.Split(input, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given")
	}

	files, err := download.Fetch(urls, tempDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("Nothing downloaded.")
		return nil
	}

	for _, f := range files {
		conv.File(f)
	}
	return nil
}
