// Package download wraps yt-dlp as a best-effort audio fetcher: URLs that
// fail are skipped by the tool itself and simply absent from the result.
package download

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Fetch downloads the best audio of each URL into dir as mp3 and returns the
// audio files present afterwards, in name order. An error is returned only
// when yt-dlp is missing or dir cannot be read; per-URL failures are not
// surfaced.
func Fetch(urls []string, dir string) ([]string, error) {
	bin, err := exec.LookPath("yt-dlp")
	if err != nil {
		return nil, fmt.Errorf("yt-dlp not found in PATH: %w", err)
	}

	cmd := exec.Command(bin, fetchArgs(urls, dir)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// yt-dlp already continues past unreachable URLs; a non-zero exit only
	// means some of them failed.
	_ = cmd.Run()

	return listAudio(dir)
}

func fetchArgs(urls []string, dir string) []string {
	args := []string{
		"--ignore-errors",
		"--no-warnings",
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "320K",
		"-o", filepath.Join(dir, "%(title)s.%(ext)s"),
	}
	return append(args, urls...)
}

// listAudio returns the mp3 files directly inside dir.
func listAudio(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".mp3") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
