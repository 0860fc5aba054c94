package dto

import (
	"time"

	"mural_backend/internal/models"

	"gorm.io/datatypes"
)

// CreatePostRequest - multipart-форма создания поста (файл передается отдельно)
type CreatePostRequest struct {
	Description string `form:"descricao" json:"descricao" validate:"required"`
	MediaType   string `form:"tipo_midia" json:"tipo_midia" validate:"required,mediacategory"`
	Transcribe  bool   `form:"transcrever" json:"transcrever"`
	Language    string `form:"idioma" json:"idioma" validate:"omitempty,max=10"`
}

type UpdatePostRequest struct {
	Description string `json:"descricao" validate:"required"`
}

type PostListQuery struct {
	PageQuery
	MediaType string `form:"tipo" validate:"omitempty,mediacategory"`
	Order     string `form:"ordem" validate:"omitempty,oneof=recentes visualizacoes comentarios"`
}

// PostResponse - пост в ответах API
type PostResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"descricao"`
	MediaType   string    `json:"tipo_midia"`
	CreatedAt   time.Time `json:"data_criacao"`
	UpdatedAt   time.Time `json:"data_atualizacao"`

	MediaURL             *string        `json:"url_midia"`
	ThumbnailURL         *string        `json:"url_miniatura"`
	Transcript           *string        `json:"transcricao_audio"`
	TranscriptSegments   datatypes.JSON `json:"segmentos_transcricao,omitempty" swaggertype:"array,object"`
	TranscriptLanguage   *string        `json:"idioma_transcricao,omitempty"`
	TranscriptConfidence *float64       `json:"confianca_transcricao,omitempty"`
	FileSize             *int64         `json:"tamanho_arquivo"`
	Duration             *int           `json:"duracao_midia"`
	FileFormat           *string        `json:"formato_arquivo"`
	OriginalName         *string        `json:"nome_original"`
	MimeType             *string        `json:"mime_type"`

	Views        int     `json:"visualizacoes"`
	CommentCount int64   `json:"num_comentarios"`
	Author       UserDTO `json:"autor"`
}

func NewPostResponse(p *models.Post, commentCount int64) *PostResponse {
	return &PostResponse{
		ID:                   p.ID,
		Description:          p.Description,
		MediaType:            p.MediaType,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
		MediaURL:             p.MediaURL,
		ThumbnailURL:         p.ThumbnailURL,
		Transcript:           p.Transcript,
		TranscriptSegments:   p.TranscriptSegments,
		TranscriptLanguage:   p.TranscriptLanguage,
		TranscriptConfidence: p.TranscriptConfidence,
		FileSize:             p.FileSize,
		Duration:             p.Duration,
		FileFormat:           p.FileFormat,
		OriginalName:         p.OriginalName,
		MimeType:             p.MimeType,
		Views:                p.Views,
		CommentCount:         commentCount,
		Author:               NewUserDTO(p.Author),
	}
}
