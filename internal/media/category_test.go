package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"imagem", " IMAGEM ", "Imagem"} {
		c, err := ParseCategory(in)
		require.NoError(t, err)
		assert.Equal(t, Image, c)
	}

	_, err := ParseCategory("documento")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imagem, video, audio, pdf, gif, texto")
}

func TestCategoryFolder(t *testing.T) {
	cases := map[Category]string{
		Image: FolderImages,
		GIF:   FolderImages,
		Video: FolderVideos,
		Audio: FolderAudio,
		PDF:   FolderDocs,
	}
	for cat, want := range cases {
		got, ok := cat.Folder()
		assert.True(t, ok, cat)
		assert.Equal(t, want, got, cat)
	}

	_, ok := Text.Folder()
	assert.False(t, ok)
}

func TestCategoryPredicates(t *testing.T) {
	for _, c := range Categories() {
		assert.Equal(t, c != Text, c.HasAsset(), c)
	}
	assert.True(t, Video.HasDuration())
	assert.True(t, Audio.HasDuration())
	assert.False(t, Image.HasDuration())
	assert.False(t, Audio.HasThumbnail())
	assert.True(t, PDF.HasThumbnail())
}

func TestCategory_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() { Category("others").Folder() })
}
