// Package tools wraps the external media binaries: ffmpeg, ffprobe and pdftoppm.
//
// Every call runs under the configured timeout, and request cancellation is
// propagated to the child process.
package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // ffmpeg and pdftoppm emit PNG
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNotInstalled is returned when a binary is not on PATH.
var ErrNotInstalled = errors.New("binary not installed")

// Runner executes a command and returns its stdout. It is swapped out in tests.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec; stderr is attached to the error.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", name, ctxErr)
		}
		return nil, fmt.Errorf("%s failed: %w; stderr=%s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

type Tools interface {
	// ProbeDuration returns the container duration in seconds.
	ProbeDuration(ctx context.Context, path string) (float64, error)
	// ExtractFrame grabs one video frame at the given offset.
	ExtractFrame(ctx context.Context, path string, atSeconds float64) (image.Image, error)
	// RenderPDFPage renders one 1-based page to a PNG in a temp dir; cleanup removes it.
	RenderPDFPage(ctx context.Context, pdfPath string, page, dpi int) (pngPath string, cleanup func(), err error)
	// ConvertToLinear16 decodes any audio into mono 16-bit PCM at sampleRate.
	ConvertToLinear16(ctx context.Context, path string, sampleRate int) ([]byte, error)
}

type Config struct {
	FFmpegPath   string
	FFprobePath  string
	PdftoppmPath string
	Timeout      time.Duration
	Runner       Runner
}

type tools struct {
	ffmpegPath   string
	ffprobePath  string
	pdftoppmPath string
	timeout      time.Duration
	run          Runner
}

func New(cfg Config) Tools {
	t := &tools{
		ffmpegPath:   cfg.FFmpegPath,
		ffprobePath:  cfg.FFprobePath,
		pdftoppmPath: cfg.PdftoppmPath,
		timeout:      cfg.Timeout,
		run:          cfg.Runner,
	}
	if t.ffmpegPath == "" {
		t.ffmpegPath = "ffmpeg"
	}
	if t.ffprobePath == "" {
		t.ffprobePath = "ffprobe"
	}
	if t.pdftoppmPath == "" {
		t.pdftoppmPath = "pdftoppm"
	}
	if t.timeout <= 0 {
		t.timeout = 2 * time.Minute
	}
	if t.run == nil {
		t.run = ExecRunner
	}
	return t
}

func (t *tools) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, t.timeout)
}

func (t *tools) ProbeDuration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	out, err := t.run(ctx, t.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, err
	}

	value := strings.TrimSpace(string(out))
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe returned no duration: %q", value)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("ffprobe returned negative duration: %v", seconds)
	}
	return seconds, nil
}

func (t *tools) ExtractFrame(ctx context.Context, path string, atSeconds float64) (image.Image, error) {
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	out, err := t.run(ctx, t.ffmpegPath,
		"-ss", strconv.FormatFloat(atSeconds, 'f', 3, 64),
		"-i", path,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output for %s", filepath.Base(path))
	}

	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg output: %w", err)
	}
	return img, nil
}

func (t *tools) RenderPDFPage(ctx context.Context, pdfPath string, page, dpi int) (string, func(), error) {
	noop := func() {}
	if page <= 0 {
		page = 1
	}
	if dpi <= 0 {
		dpi = 150
	}

	outDir, err := os.MkdirTemp("", "mural-pdf-*")
	if err != nil {
		return "", noop, fmt.Errorf("mkdir temp: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(outDir) }

	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	prefix := filepath.Join(outDir, "page")
	p := strconv.Itoa(page)
	if _, err := t.run(ctx, t.pdftoppmPath,
		"-r", strconv.Itoa(dpi),
		"-png",
		"-f", p,
		"-l", p,
		pdfPath,
		prefix,
	); err != nil {
		cleanup()
		return "", noop, err
	}

	// pdftoppm дополняет номер страницы нулями в зависимости от их количества
	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		cleanup()
		return "", noop, fmt.Errorf("pdftoppm produced no image for page %d", page)
	}
	sort.Strings(matches)
	return matches[0], cleanup, nil
}

func (t *tools) ConvertToLinear16(ctx context.Context, path string, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	ctx, cancel := t.withTimeout(ctx)
	defer cancel()

	out, err := t.run(ctx, t.ffmpegPath,
		"-i", path,
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-",
	)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no audio for %s", filepath.Base(path))
	}
	return out, nil
}
