package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Funcionario struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Nome string `gorm:"size:100;uniqueIndex;not null" json:"nome"`
	Pin  string `gorm:"size:10;not null" json:"-"`

	ValorHora float64 `gorm:"default:0" json:"valor_hora"`
	Role      string  `gorm:"size:20;default:'funcionario'" json:"role"`
	Ativo     bool    `gorm:"default:true" json:"ativo"`

	// Preenchidos apenas para role=admin (login do painel)
	Email     string `gorm:"size:100;index" json:"email,omitempty"`
	SenhaHash string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Funcionario) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
