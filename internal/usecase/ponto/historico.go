package ponto

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VTekSistemas01/ponto-api/internal/models"
)

type ConsultarHistorico struct {
	aud Auditoria
	log *zap.Logger
}

func NewConsultarHistorico(aud Auditoria, log *zap.Logger) *ConsultarHistorico {
	return &ConsultarHistorico{aud: aud, log: log}
}

// Execute devolve o histórico do registro, mais recente primeiro. Nunca
// devolve erro: falha remota ou registro sem alterações viram lista vazia,
// para a tela ter sempre o mesmo fallback.
func (uc *ConsultarHistorico) Execute(
	ctx context.Context,
	registroID uuid.UUID,
) []models.HistoricoAlteracao {

	hist, err := uc.aud.Historico(ctx, "registros_ponto", registroID)
	if err != nil {
		uc.log.Warn("falha ao obter histórico",
			zap.String("registro_id", registroID.String()),
			zap.Error(err),
		)
		return []models.HistoricoAlteracao{}
	}
	if hist == nil {
		return []models.HistoricoAlteracao{}
	}
	return hist
}
