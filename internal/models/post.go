package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post is a bulletin-board entry. MediaType decides which media columns may be set.
type Post struct {
	BaseModelWithDeleted
	UserID      string `gorm:"column:usuario_id;type:varchar(36);not null;index" json:"usuario_id"`
	Description string `gorm:"column:descricao;type:text;not null" json:"descricao"`
	MediaType   string `gorm:"column:tipo_midia;type:varchar(20);not null;index" json:"tipo_midia"`

	MediaURL             *string        `gorm:"column:url_midia" json:"url_midia"`
	ThumbnailURL         *string        `gorm:"column:url_miniatura" json:"url_miniatura"`
	Transcript           *string        `gorm:"column:transcricao_audio;type:text" json:"transcricao_audio"`
	TranscriptSegments   datatypes.JSON `gorm:"column:segmentos_transcricao" json:"segmentos_transcricao,omitempty" swaggertype:"array,object"`
	TranscriptLanguage   *string        `gorm:"column:idioma_transcricao;type:varchar(10)" json:"idioma_transcricao,omitempty"`
	TranscriptConfidence *float64       `gorm:"column:confianca_transcricao" json:"confianca_transcricao,omitempty"`

	FileSize     *int64  `gorm:"column:tamanho_arquivo" json:"tamanho_arquivo"`
	Duration     *int    `gorm:"column:duracao_midia" json:"duracao_midia"`
	FileFormat   *string `gorm:"column:formato_arquivo;type:varchar(10)" json:"formato_arquivo"`
	FileName     *string `gorm:"column:nome_arquivo" json:"nome_arquivo"`
	OriginalName *string `gorm:"column:nome_original" json:"nome_original"`
	MimeType     *string `gorm:"column:mime_type;type:varchar(100)" json:"mime_type"`

	Approved    bool `gorm:"column:aprovado;not null;index" json:"aprovado"`
	Reported    bool `gorm:"column:denunciado;not null" json:"denunciado"`
	ReportCount int  `gorm:"column:numero_denuncias;not null" json:"numero_denuncias"`
	Views       int  `gorm:"column:visualizacoes;not null" json:"visualizacoes"`

	Author *User `gorm:"foreignKey:UserID" json:"autor,omitempty"`
}

func (Post) TableName() string { return "postagens" }

type Comment struct {
	BaseModelWithDeleted
	PostID   string `gorm:"column:postagem_id;type:varchar(36);not null;index" json:"postagem_id"`
	UserID   string `gorm:"column:usuario_id;type:varchar(36);not null;index" json:"usuario_id"`
	Text     string `gorm:"column:texto;type:text;not null" json:"texto"`
	Approved bool   `gorm:"column:aprovado;not null" json:"aprovado"`
	Reported bool   `gorm:"column:denunciado;not null" json:"denunciado"`

	Author *User `gorm:"foreignKey:UserID" json:"autor,omitempty"`
}

func (Comment) TableName() string { return "comentarios" }

type Report struct {
	BaseModel
	ReporterID  string        `gorm:"column:denunciante_id;type:varchar(36);not null;uniqueIndex:idx_denuncia_unica" json:"denunciante_id"`
	TargetType  ReportTarget  `gorm:"column:tipo_conteudo;type:varchar(20);not null;uniqueIndex:idx_denuncia_unica" json:"tipo_conteudo"`
	TargetID    string        `gorm:"column:conteudo_id;type:varchar(36);not null;uniqueIndex:idx_denuncia_unica" json:"conteudo_id"`
	Reason      string        `gorm:"column:motivo;type:varchar(100);not null" json:"motivo"`
	Description *string       `gorm:"column:descricao;type:text" json:"descricao,omitempty"`
	Resolved    bool          `gorm:"column:resolvido;not null;index" json:"resolvido"`
	ResolvedBy  *string       `gorm:"column:resolvido_por;type:varchar(36)" json:"resolvido_por,omitempty"`
	ResolvedAt  *time.Time    `gorm:"column:resolvido_em" json:"resolvido_em,omitempty"`
	ActionTaken *ReportAction `gorm:"column:acao_tomada;type:varchar(20)" json:"acao_tomada,omitempty"`

	Reporter *User `gorm:"foreignKey:ReporterID" json:"denunciante,omitempty"`
}

func (Report) TableName() string { return "denuncias" }
