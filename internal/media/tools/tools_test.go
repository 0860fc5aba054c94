package tools

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func recorder(out []byte, err error, calls *[]call) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{name: name, args: args})
		return out, err
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestProbeDuration(t *testing.T) {
	var calls []call
	tl := New(Config{FFprobePath: "ffprobe", Runner: recorder([]byte("12.480000\n"), nil, &calls)})

	d, err := tl.ProbeDuration(context.Background(), "/tmp/v.mp4")
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 0.0001)
	require.Len(t, calls, 1)
	assert.Equal(t, "ffprobe", calls[0].name)
	assert.Equal(t, "/tmp/v.mp4", calls[0].args[len(calls[0].args)-1])
}

func TestProbeDuration_Garbage(t *testing.T) {
	var calls []call
	tl := New(Config{Runner: recorder([]byte("N/A"), nil, &calls)})

	_, err := tl.ProbeDuration(context.Background(), "x.mp3")
	assert.Error(t, err)
}

func TestProbeDuration_RunnerError(t *testing.T) {
	var calls []call
	tl := New(Config{Runner: recorder(nil, ErrNotInstalled, &calls)})

	_, err := tl.ProbeDuration(context.Background(), "x.mp3")
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestExtractFrame(t *testing.T) {
	var calls []call
	tl := New(Config{FFmpegPath: "ffmpeg", Runner: recorder(pngBytes(t, 64, 32), nil, &calls)})

	img, err := tl.ExtractFrame(context.Background(), "v.mp4", 1)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, []string{"-ss", "1.000", "-i", "v.mp4", "-vframes", "1", "-f", "image2pipe", "-vcodec", "png", "-"}, calls[0].args)
}

func TestExtractFrame_EmptyOutput(t *testing.T) {
	var calls []call
	tl := New(Config{Runner: recorder(nil, nil, &calls)})

	_, err := tl.ExtractFrame(context.Background(), "v.mp4", 0.5)
	assert.Error(t, err)
}

func TestRenderPDFPage(t *testing.T) {
	data := pngBytes(t, 10, 10)
	var gotArgs []string
	runner := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		prefix := args[len(args)-1]
		return nil, os.WriteFile(prefix+"-1.png", data, 0644)
	}
	tl := New(Config{Runner: runner})

	path, cleanup, err := tl.RenderPDFPage(context.Background(), "doc.pdf", 1, 150)
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
	assert.Equal(t, []string{"-r", "150", "-png", "-f", "1", "-l", "1", "doc.pdf"}, gotArgs[:8])

	cleanup()
	_, statErr = os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderPDFPage_NoOutput(t *testing.T) {
	tl := New(Config{Runner: func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, nil
	}})

	_, cleanup, err := tl.RenderPDFPage(context.Background(), "doc.pdf", 1, 150)
	assert.Error(t, err)
	cleanup()
}

func TestConvertToLinear16(t *testing.T) {
	var calls []call
	tl := New(Config{Runner: recorder([]byte{1, 2, 3, 4}, nil, &calls)})

	pcm, err := tl.ConvertToLinear16(context.Background(), "a.ogg", 16000)
	require.NoError(t, err)
	assert.Len(t, pcm, 4)
	assert.Contains(t, calls[0].args, "16000")
	assert.Contains(t, calls[0].args, "pcm_s16le")
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner(context.Background(), "definitely-not-a-real-binary-xyz")
	assert.True(t, errors.Is(err, ErrNotInstalled))
}
