// Package media implements the upload ingestion pipeline:
// validate, place on disk, then run the category-specific processing.
package media

import (
	"fmt"
	"strings"
)

// Category is the closed set of post media types.
type Category string

const (
	Image Category = "imagem"
	Video Category = "video"
	Audio Category = "audio"
	PDF   Category = "pdf"
	GIF   Category = "gif"
	Text  Category = "texto"
)

// Storage subfolders under the upload root.
const (
	FolderImages      = "images"
	FolderVideos      = "videos"
	FolderAudio       = "audio"
	FolderDocs        = "docs"
	FolderThumbnails  = "thumbnails"
	FolderProfilePics = "profile_pics"
	// FolderOthers holds stored assets of unknown origin. No category maps to it.
	FolderOthers = "others"
)

var allCategories = []Category{Image, Video, Audio, PDF, GIF, Text}

func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory is case-insensitive and ignores surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Image, Video, Audio, PDF, GIF, Text:
		return c, nil
	}
	names := make([]string, len(allCategories))
	for i, cat := range allCategories {
		names[i] = string(cat)
	}
	return "", fmt.Errorf("tipo de mídia inválido: %q. Valores aceitos: %s", s, strings.Join(names, ", "))
}

func (c Category) String() string { return string(c) }

// Folder returns the storage subfolder. Text has none.
func (c Category) Folder() (string, bool) {
	switch c {
	case Image, GIF:
		return FolderImages, true
	case Video:
		return FolderVideos, true
	case Audio:
		return FolderAudio, true
	case PDF:
		return FolderDocs, true
	case Text:
		return "", false
	}
	panic(fmt.Sprintf("media: unhandled category %q", string(c)))
}

// HasAsset is false only for text posts.
func (c Category) HasAsset() bool {
	switch c {
	case Image, GIF, Video, Audio, PDF:
		return true
	case Text:
		return false
	}
	panic(fmt.Sprintf("media: unhandled category %q", string(c)))
}

// HasThumbnail reports whether the category produces a thumbnail.
func (c Category) HasThumbnail() bool {
	switch c {
	case Image, GIF, Video, PDF:
		return true
	case Audio, Text:
		return false
	}
	panic(fmt.Sprintf("media: unhandled category %q", string(c)))
}

// HasDuration reports whether the category carries a playback duration.
func (c Category) HasDuration() bool {
	switch c {
	case Video, Audio:
		return true
	case Image, GIF, PDF, Text:
		return false
	}
	panic(fmt.Sprintf("media: unhandled category %q", string(c)))
}
