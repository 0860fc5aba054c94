package media

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedName = regexp.MustCompile(`^[0-9a-f]{32}\.png$`)

func TestPlace_WritesFile(t *testing.T) {
	root := t.TempDir()
	p := NewPlacer(root, "/static/uploads/")
	data := pngFileBytes(t, 20, 10)

	asset, err := p.Place(context.Background(), bytes.NewReader(data), "../../etc/Minha Foto.PNG", Image)
	require.NoError(t, err)

	assert.Regexp(t, generatedName, asset.FileName)
	assert.Equal(t, "Minha Foto.PNG", asset.OriginalName)
	assert.Equal(t, filepath.Join(root, "images", asset.FileName), asset.FullPath)
	assert.Equal(t, "/static/uploads/images/"+asset.FileName, asset.URL)
	assert.Equal(t, int64(len(data)), asset.Size)
	assert.Equal(t, "png", asset.Extension)
	assert.Equal(t, "image/png", asset.MimeType)
	assert.Equal(t, "images/"+asset.FileName, asset.Key())

	got, err := os.ReadFile(asset.FullPath)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestPlace_UniqueNames(t *testing.T) {
	p := NewPlacer(t.TempDir(), "/static/uploads")
	a, err := p.Place(context.Background(), strings.NewReader("a"), "x.mp3", Audio)
	require.NoError(t, err)
	b, err := p.Place(context.Background(), strings.NewReader("b"), "x.mp3", Audio)
	require.NoError(t, err)
	assert.NotEqual(t, a.FileName, b.FileName)
	assert.Equal(t, FolderAudio, a.Folder)
}

type failingReader struct{ n int }

func (f *failingReader) Read(p []byte) (int, error) {
	if f.n > 0 {
		f.n--
		p[0] = 'x'
		return 1, nil
	}
	return 0, errors.New("disk on fire")
}

func TestPlace_RemovesPartialFileOnError(t *testing.T) {
	root := t.TempDir()
	p := NewPlacer(root, "/static/uploads")

	_, err := p.Place(context.Background(), &failingReader{n: 5}, "doc.pdf", PDF)
	require.Error(t, err)

	entries, _ := os.ReadDir(filepath.Join(root, FolderDocs))
	assert.Empty(t, entries)
}

func TestPlace_TextHasNoFolder(t *testing.T) {
	_, err := NewPlacer(t.TempDir(), "").Place(context.Background(), strings.NewReader(""), "a.txt", Text)
	assert.Error(t, err)
}

func TestPlace_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPlacer(t.TempDir(), "").Place(ctx, strings.NewReader("x"), "a.mp3", Audio)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRemove(t *testing.T) {
	p := NewPlacer(t.TempDir(), "/static/uploads")
	asset, err := p.Place(context.Background(), strings.NewReader("x"), "a.mp3", Audio)
	require.NoError(t, err)

	require.NoError(t, p.Remove(asset))
	_, statErr := os.Stat(asset.FullPath)
	assert.True(t, os.IsNotExist(statErr))
	assert.NoError(t, p.Remove(asset))
	assert.NoError(t, p.Remove(nil))
}

func TestEnsureLayout(t *testing.T) {
	root := t.TempDir()
	p := NewPlacer(root, "")
	require.NoError(t, p.EnsureLayout())
	require.NoError(t, p.EnsureLayout())
	for _, dir := range []string{"images", "videos", "audio", "docs", "thumbnails", "profile_pics"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
}

func TestPlace_DefaultPublicPrefix(t *testing.T) {
	p := NewPlacer(t.TempDir(), "")
	asset, err := p.Place(context.Background(), strings.NewReader("ogg"), "aula.ogg", Audio)
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/audio/"+asset.FileName, asset.URL)
	assert.Equal(t, "/static/uploads/thumbnails/thumb_x.jpg", p.ThumbnailURL("thumb_x.jpg"))
}

func TestPlace_CountsStreamedBytes(t *testing.T) {
	root := t.TempDir()
	p := NewPlacer(root, "/static/uploads")
	// больше sniffLen, чтобы размер считался после Peek
	data := bytes.Repeat([]byte("%PDF-1.4 x"), 1000)

	asset, err := p.Place(context.Background(), bytes.NewReader(data), "edital.pdf", PDF)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), asset.Size)
	assert.Equal(t, "application/pdf", asset.MimeType)

	got, err := os.ReadFile(filepath.Join(root, FolderDocs, asset.FileName))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRemoveThumbnail(t *testing.T) {
	p := NewPlacer(t.TempDir(), "/static/uploads")
	require.NoError(t, p.EnsureLayout())
	thumb := filepath.Join(p.ThumbnailDir(), "thumb_a.jpg")
	require.NoError(t, os.WriteFile(thumb, []byte("jpg"), 0644))

	// имя без каталога: ../ не выводит за thumbnails
	require.NoError(t, p.RemoveThumbnail("../thumbnails/thumb_a.jpg"))
	_, statErr := os.Stat(thumb)
	assert.True(t, os.IsNotExist(statErr))

	assert.NoError(t, p.RemoveThumbnail("thumb_a.jpg"))
	assert.NoError(t, p.RemoveThumbnail(""))
}
