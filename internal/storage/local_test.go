package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveURLDelete(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: base, BaseURL: "/static/uploads/"})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "images/a.txt", strings.NewReader("hello"), "text/plain"))

	data, err := os.ReadFile(filepath.Join(base, "images", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	url, err := s.GetURL(ctx, "images/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/images/a.txt", url)

	require.NoError(t, s.Delete(ctx, "images/a.txt"))
	_, statErr := os.Stat(filepath.Join(base, "images", "a.txt"))
	assert.True(t, os.IsNotExist(statErr))

	// Повторное удаление не ошибка
	assert.NoError(t, s.Delete(ctx, "images/a.txt"))
}

func TestLocalStorage_PathStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: base})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "../../escape.txt", strings.NewReader("x"), "text/plain"))
	_, err = os.Stat(filepath.Join(base, "escape.txt"))
	assert.NoError(t, err)

	assert.Error(t, s.Save(ctx, "", strings.NewReader("x"), "text/plain"))
	assert.Error(t, s.Delete(ctx, "/"))

	full, err := s.Path("docs/../../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "etc", "passwd"), full)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalStorage_FailedWriteLeavesNoFile(t *testing.T) {
	base := t.TempDir()
	s := NewLocal(base, "")

	err := s.Save(context.Background(), "docs/x.pdf", brokenReader{}, "application/pdf")
	require.Error(t, err)

	entries, _ := os.ReadDir(filepath.Join(base, "docs"))
	assert.Empty(t, entries)
}

func TestLocalStorage_DefaultURL(t *testing.T) {
	assert.Equal(t, "/static/uploads/audio/a.mp3", NewLocal(t.TempDir(), "").URL("audio/a.mp3"))
	assert.Equal(t, "/media/audio/a.mp3", NewLocal(t.TempDir(), "/media/").URL("/audio/a.mp3"))
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}

func TestNewCloudflareR2Storage_RequiresEndpoint(t *testing.T) {
	_, err := NewCloudflareR2Storage(Config{Bucket: "b"})
	assert.Error(t, err)
}

func TestConfig_IsRemote(t *testing.T) {
	assert.False(t, Config{Type: TypeLocal}.IsRemote())
	assert.True(t, Config{Type: TypeS3}.IsRemote())
	assert.True(t, Config{Type: TypeCloudflareR2}.IsRemote())
}
