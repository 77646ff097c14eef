package ponto

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VTekSistemas01/ponto-api/internal/backend"
	domain "github.com/VTekSistemas01/ponto-api/internal/domain/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/fila"
	"github.com/VTekSistemas01/ponto-api/internal/timezone"
)

type RegistrarSaida struct {
	repo   domain.Repository
	fila   *fila.Fila
	travas *Travas
	log    *zap.Logger
}

func NewRegistrarSaida(
	repo domain.Repository,
	f *fila.Fila,
	travas *Travas,
	log *zap.Logger,
) *RegistrarSaida {
	return &RegistrarSaida{
		repo:   repo,
		fila:   f,
		travas: travas,
		log:    log,
	}
}

func (uc *RegistrarSaida) Execute(
	ctx context.Context,
	funcionarioID uuid.UUID,
) (*ResultadoPonto, error) {

	destravar := uc.travas.Travar(funcionarioID)
	defer destravar()

	agora := timezone.Agora()

	// --------------------------------------------------
	// 1. Localiza o turno aberto
	// --------------------------------------------------
	// Sem rede não dá para saber QUAL registro fechar; diferente da
	// entrada, a saída não é enfileirada nessa fase — o erro sobe e o
	// funcionário tenta de novo.
	aberto, err := uc.repo.BuscarRegistroAberto(ctx, funcionarioID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanRegistrarSaida(aberto); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Total de horas (subtração real de timestamps)
	// --------------------------------------------------
	total, err := domain.CalcularTotalHoras(aberto.Entrada, agora)
	if err != nil {
		// Saída antes da entrada: anomalia de dados, intervenção do
		// administrador — nenhuma mutação.
		return nil, err
	}

	// --------------------------------------------------
	// 3. Fecha o turno
	// --------------------------------------------------
	if err := uc.repo.FecharRegistroPorID(ctx, aberto.ID, agora, total); err != nil {
		if backend.EhConectividade(err) {
			ev := fila.NovoEventoSaida(funcionarioID, aberto.ID, agora, total)
			if qErr := uc.fila.Enfileirar(ctx, ev); qErr != nil {
				return nil, qErr
			}
			uc.log.Warn("sem conexão: saída salva offline",
				zap.String("funcionario_id", funcionarioID.String()),
				zap.String("evento_id", ev.ID.String()),
			)
			return &ResultadoPonto{Enfileirado: true, TotalHoras: &total}, nil
		}
		return nil, err
	}

	aberto.Saida = &agora
	aberto.TotalHoras = &total

	return &ResultadoPonto{Registro: aberto, TotalHoras: &total}, nil
}
