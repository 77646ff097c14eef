package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VTekSistemas01/ponto-api/internal/models"
)

// Alteracao descreve uma correção administrativa a ser lavrada no
// histórico (antes/depois/motivo/autor).
type Alteracao struct {
	Tabela        string
	RegistroID    uuid.UUID
	FuncionarioID *uuid.UUID
	AdminNome     string
	CampoAlterado string
	ValorAnterior string
	ValorNovo     string
	Motivo        *string
}

// Logger escreve e lê o livro-razão pelas funções remotas do banco —
// a mesma superfície de RPC que o painel consumia.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Registrar lavra UMA linha por edição aceita. Não é idempotente: quem
// chama não deve repetir a chamada para a mesma edição lógica.
func (l *Logger) Registrar(ctx context.Context, alt Alteracao) error {
	return l.db.WithContext(ctx).Exec(
		`SELECT registrar_alteracao_admin(?, ?, ?, ?, ?, ?, ?, ?)`,
		alt.AdminNome,
		alt.CampoAlterado,
		alt.FuncionarioID,
		alt.Motivo,
		alt.RegistroID,
		alt.Tabela,
		alt.ValorAnterior,
		alt.ValorNovo,
	).Error
}

// Historico devolve as alterações de um registro, mais recente primeiro.
func (l *Logger) Historico(ctx context.Context, tabela string, registroID uuid.UUID) ([]models.HistoricoAlteracao, error) {
	var hist []models.HistoricoAlteracao
	err := l.db.WithContext(ctx).
		Raw(`SELECT * FROM obter_historico_registro(?, ?)`, tabela, registroID).
		Scan(&hist).Error
	if err != nil {
		return nil, err
	}
	return hist, nil
}
