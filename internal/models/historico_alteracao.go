package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoricoAlteracao é o livro-razão de correções administrativas.
// Append-only: nunca atualizado nem apagado.
type HistoricoAlteracao struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	Tabela     string     `gorm:"size:50;not null" json:"tabela"`
	RegistroID uuid.UUID  `gorm:"type:uuid;index;not null" json:"registro_id"`

	FuncionarioID *uuid.UUID `gorm:"type:uuid" json:"funcionario_id"`
	AdminNome     string     `gorm:"size:100;not null" json:"admin_nome"`

	CampoAlterado string  `gorm:"size:50;not null" json:"campo_alterado"`
	ValorAnterior string  `gorm:"type:text" json:"valor_anterior"`
	ValorNovo     string  `gorm:"type:text" json:"valor_novo"`
	Motivo        *string `gorm:"type:text" json:"motivo"`

	CreatedAt time.Time `json:"created_at"`
}

func (HistoricoAlteracao) TableName() string {
	return "historico_alteracoes"
}
