package services_test

import (
	"testing"

	"mural_backend/internal/media"
	"mural_backend/internal/services"
	"mural_backend/internal/transcription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAsset(cat media.Category, ext string) *media.StoredAsset {
	folder, _ := cat.Folder()
	name := "abc123." + ext
	return &media.StoredAsset{
		FileName:     name,
		OriginalName: "original." + ext,
		FullPath:     "/tmp/" + folder + "/" + name,
		URL:          "/static/uploads/" + folder + "/" + name,
		Size:         2048,
		Extension:    ext,
		MimeType:     "application/octet-stream",
		Folder:       folder,
	}
}

func intPtr(n int) *int { return &n }
func str(s string) *string { return &s }

func TestBuildPostRecord_TextHasNoMedia(t *testing.T) {
	post := services.BuildPostRecord("u1", "  texto do mural  ", media.Text, nil, media.Outcome{})

	assert.Equal(t, "texto do mural", post.Description)
	assert.Equal(t, "texto", post.MediaType)
	assert.True(t, post.Approved)
	assert.False(t, post.Reported)
	assert.Zero(t, post.ReportCount)
	assert.Zero(t, post.Views)
	assert.Nil(t, post.MediaURL)
	assert.Nil(t, post.ThumbnailURL)
	assert.Nil(t, post.FileSize)
	assert.Nil(t, post.Duration)
	assert.Nil(t, post.Transcript)
}

func TestBuildPostRecord_ImageDropsDuration(t *testing.T) {
	asset := sampleAsset(media.Image, "png")
	outcome := media.Outcome{ThumbnailURL: str("/static/uploads/thumbnails/thumb_abc123.png"), Duration: intPtr(5)}

	post := services.BuildPostRecord("u1", "uma imagem bonita", media.Image, asset, outcome)

	require.NotNil(t, post.MediaURL)
	assert.Equal(t, asset.URL, *post.MediaURL)
	require.NotNil(t, post.ThumbnailURL)
	assert.Equal(t, "/static/uploads/thumbnails/thumb_abc123.png", *post.ThumbnailURL)
	assert.Nil(t, post.Duration)
	assert.Equal(t, int64(2048), *post.FileSize)
	assert.Equal(t, "png", *post.FileFormat)
	assert.Equal(t, "original.png", *post.OriginalName)
	assert.Equal(t, "abc123.png", *post.FileName)
}

func TestBuildPostRecord_AudioHasNoThumbnail(t *testing.T) {
	text := "olá turma"
	outcome := media.Outcome{
		ThumbnailURL: str("/should/not/appear.jpg"),
		Duration:     intPtr(42),
		Transcript: &transcription.Result{
			Success:    true,
			Text:       &text,
			Language:   "pt",
			Confidence: 0.9,
			Segments: []transcription.Segment{
				{Start: 0, End: 1.5, Text: "olá turma"},
			},
		},
	}

	post := services.BuildPostRecord("u1", "aviso em audio", media.Audio, sampleAsset(media.Audio, "mp3"), outcome)

	assert.Nil(t, post.ThumbnailURL)
	require.NotNil(t, post.Duration)
	assert.Equal(t, 42, *post.Duration)
	require.NotNil(t, post.Transcript)
	assert.Equal(t, "olá turma", *post.Transcript)
	assert.Equal(t, "pt", *post.TranscriptLanguage)
	assert.InDelta(t, 0.9, *post.TranscriptConfidence, 1e-9)
	assert.JSONEq(t, `[{"inicio":0,"fim":1.5,"texto":"olá turma","no_speech_prob":0}]`, string(post.TranscriptSegments))
}

func TestBuildPostRecord_FailedTranscriptIgnored(t *testing.T) {
	outcome := media.Outcome{Transcript: &transcription.Result{Success: false, Error: "boom"}}

	post := services.BuildPostRecord("u1", "aviso em audio", media.Audio, sampleAsset(media.Audio, "wav"), outcome)

	assert.Nil(t, post.Transcript)
	assert.Nil(t, post.TranscriptConfidence)
	assert.Empty(t, post.TranscriptSegments)
}

func TestBuildPostRecord_TranscriptOnlyForAudio(t *testing.T) {
	text := "nada"
	outcome := media.Outcome{
		ThumbnailURL: str(testVideoPlaceholder),
		Duration:     intPtr(3),
		Transcript:   &transcription.Result{Success: true, Text: &text},
	}

	post := services.BuildPostRecord("u1", "um video curto", media.Video, sampleAsset(media.Video, "mp4"), outcome)

	assert.Nil(t, post.Transcript)
	assert.Equal(t, testVideoPlaceholder, *post.ThumbnailURL)
	assert.Equal(t, 3, *post.Duration)
}

func TestBuildPostRecord_PDFHasNoDuration(t *testing.T) {
	outcome := media.Outcome{ThumbnailURL: str(testPDFPlaceholder), Duration: intPtr(9)}

	post := services.BuildPostRecord("u1", "edital do curso", media.PDF, sampleAsset(media.PDF, "pdf"), outcome)

	assert.Nil(t, post.Duration)
	assert.Equal(t, testPDFPlaceholder, *post.ThumbnailURL)
}
