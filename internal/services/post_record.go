package services

import (
	"encoding/json"
	"strings"

	"mural_backend/internal/media"
	"mural_backend/internal/models"

	"gorm.io/datatypes"
)

// BuildPostRecord собирает запись поста из результатов конвейера.
// Набор медиаполей определяется категорией: лишние артефакты отбрасываются.
func BuildPostRecord(authorID, description string, cat media.Category, asset *media.StoredAsset, outcome media.Outcome) *models.Post {
	post := &models.Post{
		UserID:      authorID,
		Description: strings.TrimSpace(description),
		MediaType:   string(cat),
		Approved:    true,
		Reported:    false,
		ReportCount: 0,
		Views:       0,
	}

	if !cat.HasAsset() || asset == nil {
		return post
	}

	post.MediaURL = strPtr(asset.URL)
	post.FileSize = int64Ptr(asset.Size)
	post.FileFormat = strPtr(asset.Extension)
	post.FileName = strPtr(asset.FileName)
	post.OriginalName = strPtr(asset.OriginalName)
	post.MimeType = strPtr(asset.MimeType)

	if cat.HasThumbnail() && outcome.ThumbnailURL != nil {
		post.ThumbnailURL = strPtr(*outcome.ThumbnailURL)
	}
	if cat.HasDuration() && outcome.Duration != nil {
		d := *outcome.Duration
		post.Duration = &d
	}

	if cat == media.Audio && outcome.Transcript != nil && outcome.Transcript.Success && outcome.Transcript.Text != nil {
		t := outcome.Transcript
		post.Transcript = strPtr(*t.Text)
		if t.Language != "" {
			post.TranscriptLanguage = strPtr(t.Language)
		}
		conf := t.Confidence
		post.TranscriptConfidence = &conf
		if len(t.Segments) > 0 {
			if raw, err := json.Marshal(t.Segments); err == nil {
				post.TranscriptSegments = datatypes.JSON(raw)
			}
		}
	}

	return post
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }
