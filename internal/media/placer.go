package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"mural_backend/internal/storage"
)

// sniffLen is how many leading bytes mimetype inspects.
const sniffLen = 3072

// StoredAsset describes a primary file written under the upload root.
type StoredAsset struct {
	FileName     string `json:"nome_arquivo"`
	OriginalName string `json:"nome_original"`
	FullPath     string `json:"caminho_completo"`
	URL          string `json:"url_midia"`
	Size         int64  `json:"tamanho_arquivo"`
	Extension    string `json:"formato_arquivo"`
	MimeType     string `json:"mime_type"`
	Folder       string `json:"-"`
}

// Key is the object key relative to the upload root, e.g. "images/<name>".
func (a *StoredAsset) Key() string {
	return path.Join(a.Folder, a.FileName)
}

// Base is the generated name without its extension.
func (a *StoredAsset) Base() string {
	return strings.TrimSuffix(a.FileName, filepath.Ext(a.FileName))
}

// Placer names uploads and writes them into the local upload root through storage.LocalStorage.
type Placer struct {
	files *storage.LocalStorage
}

func NewPlacer(root, publicPrefix string) *Placer {
	return &Placer{files: storage.NewLocal(root, publicPrefix)}
}

func (p *Placer) Root() string { return p.files.BasePath() }

// EnsureLayout creates every upload subfolder. Safe to call repeatedly.
func (p *Placer) EnsureLayout() error {
	for _, dir := range []string{FolderImages, FolderVideos, FolderAudio, FolderDocs, FolderThumbnails, FolderProfilePics, FolderOthers} {
		if err := os.MkdirAll(filepath.Join(p.Root(), dir), 0755); err != nil {
			return fmt.Errorf("create upload folder %s: %w", dir, err)
		}
	}
	return nil
}

// GenerateName returns "<32 hex>.<ext>"; the original base name is dropped.
func GenerateName(originalName string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	ext := Extension(originalName)
	if ext == "" {
		return id
	}
	return id + "." + ext
}

// Place streams src into <root>/<folder>/<generated name>.
// On any failure the partial file is removed and the error returned.
func (p *Placer) Place(ctx context.Context, src io.Reader, originalName string, cat Category) (*StoredAsset, error) {
	folder, ok := cat.Folder()
	if !ok {
		return nil, fmt.Errorf("category %s has no storage folder", cat)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := GenerateName(originalName)
	key := path.Join(folder, name)
	fullPath, err := p.files.Path(key)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReaderSize(src, sniffLen)
	header, peekErr := br.Peek(sniffLen)
	if peekErr != nil && !errors.Is(peekErr, io.EOF) && !errors.Is(peekErr, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read upload: %w", peekErr)
	}
	mime := mimetype.Detect(header).String()

	body := &countingReader{r: &ctxReader{ctx: ctx, r: br}}
	if err := p.files.Save(ctx, key, body, mime); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	return &StoredAsset{
		FileName:     name,
		OriginalName: filepath.Base(originalName),
		FullPath:     fullPath,
		URL:          p.URL(folder, name),
		Size:         body.n,
		Extension:    Extension(originalName),
		MimeType:     mime,
		Folder:       folder,
	}, nil
}

// URL is the public path for a file in folder.
func (p *Placer) URL(folder, name string) string {
	return p.files.URL(path.Join(folder, name))
}

func (p *Placer) ThumbnailDir() string {
	return filepath.Join(p.Root(), FolderThumbnails)
}

func (p *Placer) ThumbnailURL(name string) string {
	return p.URL(FolderThumbnails, name)
}

// Remove deletes a placed asset; a missing file is not an error.
func (p *Placer) Remove(asset *StoredAsset) error {
	if asset == nil || asset.FileName == "" {
		return nil
	}
	return p.files.Delete(context.Background(), asset.Key())
}

// RemoveThumbnail deletes a thumbnail previously written by the processor.
func (p *Placer) RemoveThumbnail(name string) error {
	if name == "" {
		return nil
	}
	return p.files.Delete(context.Background(), path.Join(FolderThumbnails, filepath.Base(name)))
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ctxReader stops a copy when the request is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
