package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
	UpdatedAt time.Time `gorm:"column:atualizado_em;autoUpdateTime" json:"atualizado_em"`
}

// BeforeCreate присваивает UUID, если ID не задан (sqlite не умеет uuid_generate_v4)
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type BaseModelWithDeleted struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"column:deletado_em;index" json:"-"`
}

// AllModels is the AutoMigrate order.
func AllModels() []any {
	return []any{
		&User{},
		&Administrator{},
		&Session{},
		&Post{},
		&Comment{},
		&Report{},
	}
}
