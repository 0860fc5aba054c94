package dto

import (
	"time"

	"mural_backend/internal/models"
)

type ReportListQuery struct {
	PageQuery
	Resolved *bool  `form:"resolvido"`
	Type     string `form:"tipo" validate:"omitempty,contenttype"`
}

type ResolveReportRequest struct {
	Action models.ReportAction `json:"acao" validate:"required,reportaction"`
}

type BanRequest struct {
	Reason string `json:"motivo" validate:"required,min=3,max=500"`
}

type ReportResponse struct {
	ID          string               `json:"id"`
	TargetType  models.ReportTarget  `json:"tipo_conteudo"`
	TargetID    string               `json:"conteudo_id"`
	Reason      string               `json:"motivo"`
	Description *string              `json:"descricao,omitempty"`
	Resolved    bool                 `json:"resolvido"`
	ResolvedBy  *string              `json:"resolvido_por,omitempty"`
	ResolvedAt  *time.Time           `json:"resolvido_em,omitempty"`
	ActionTaken *models.ReportAction `json:"acao_tomada,omitempty"`
	CreatedAt   time.Time            `json:"data_criacao"`
	Reporter    UserDTO              `json:"denunciante"`
}

func NewReportResponse(r *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:          r.ID,
		TargetType:  r.TargetType,
		TargetID:    r.TargetID,
		Reason:      r.Reason,
		Description: r.Description,
		Resolved:    r.Resolved,
		ResolvedBy:  r.ResolvedBy,
		ResolvedAt:  r.ResolvedAt,
		ActionTaken: r.ActionTaken,
		CreatedAt:   r.CreatedAt,
		Reporter:    NewUserDTO(r.Reporter),
	}
}
