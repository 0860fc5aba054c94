package dto

import (
	"time"

	"mural_backend/internal/models"
)

type CommentRequest struct {
	Text string `json:"texto" validate:"required"`
}

type CommentListQuery struct {
	PageQuery
	Order string `form:"ordenacao" validate:"omitempty,oneof=recentes antigos"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postagem_id"`
	Text      string    `json:"texto"`
	CreatedAt time.Time `json:"data_criacao"`
	UpdatedAt time.Time `json:"data_atualizacao"`
	Author    UserDTO   `json:"autor"`
}

type CommentCountResponse struct {
	PostID string `json:"postagem_id"`
	Total  int64  `json:"total_comentarios"`
}

func NewCommentResponse(c *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Author:    NewUserDTO(c.Author),
	}
}
