package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistroPonto struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FuncionarioID uuid.UUID   `gorm:"type:uuid;index;not null" json:"funcionario_id"`
	Funcionario   Funcionario `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"funcionario"`

	// Dia-calendário em que o turno COMEÇOU (fuso canônico). Um turno
	// noturno mantém a data da entrada mesmo quando a saída cai no dia
	// seguinte.
	Data time.Time `gorm:"type:date;not null" json:"data"`

	Entrada time.Time  `gorm:"not null" json:"entrada"`
	Saida   *time.Time `json:"saida"`

	// Horas decimais (2 casas). Nulo enquanto o turno está aberto;
	// sempre recalculado quando entrada ou saída mudam.
	TotalHoras *float64 `json:"total_horas"`

	Pago          bool       `gorm:"default:false" json:"pago"`
	DataPagamento *time.Time `json:"data_pagamento"`

	Editado    bool       `gorm:"default:false" json:"editado"`
	EditadoPor string     `gorm:"size:100" json:"editado_por"`
	EditadoEm  *time.Time `json:"editado_em"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RegistroPonto) TableName() string {
	return "registros_ponto"
}

func (r *RegistroPonto) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
