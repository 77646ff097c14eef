package ponto

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VTekSistemas01/ponto-api/internal/backend"
	domain "github.com/VTekSistemas01/ponto-api/internal/domain/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/fila"
	"github.com/VTekSistemas01/ponto-api/internal/models"
	"github.com/VTekSistemas01/ponto-api/internal/timezone"
)

// ======================================================
// OUTPUT
// ======================================================

// ResultadoPonto cobre os dois desfechos bons de um bater de ponto:
// gravado no backend, ou enfileirado para sincronização (sem rede).
type ResultadoPonto struct {
	Registro    *models.RegistroPonto
	Enfileirado bool
	TotalHoras  *float64
}

// ======================================================
// USE CASE
// ======================================================

type RegistrarEntrada struct {
	repo   domain.Repository
	fila   *fila.Fila
	travas *Travas
	log    *zap.Logger
}

func NewRegistrarEntrada(
	repo domain.Repository,
	f *fila.Fila,
	travas *Travas,
	log *zap.Logger,
) *RegistrarEntrada {
	return &RegistrarEntrada{
		repo:   repo,
		fila:   f,
		travas: travas,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RegistrarEntrada) Execute(
	ctx context.Context,
	funcionarioID uuid.UUID,
) (*ResultadoPonto, error) {

	destravar := uc.travas.Travar(funcionarioID)
	defer destravar()

	agora := timezone.Agora()

	// --------------------------------------------------
	// 1. Turno aberto? (qualquer data — cobre turno noturno)
	// --------------------------------------------------
	aberto, err := uc.repo.BuscarRegistroAberto(ctx, funcionarioID)
	if err != nil {
		if backend.EhConectividade(err) {
			return uc.enfileirar(ctx, funcionarioID, agora)
		}
		return nil, err
	}

	if err := domain.CanRegistrarEntrada(aberto); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Cria o turno aberto
	// --------------------------------------------------
	reg := domain.NovoRegistroEntrada(funcionarioID, agora)

	if err := uc.repo.CriarRegistro(ctx, reg); err != nil {
		if backend.EhConectividade(err) {
			return uc.enfileirar(ctx, funcionarioID, agora)
		}
		return nil, err
	}

	return &ResultadoPonto{Registro: reg}, nil
}

func (uc *RegistrarEntrada) enfileirar(
	ctx context.Context,
	funcionarioID uuid.UUID,
	agora time.Time,
) (*ResultadoPonto, error) {

	ev := fila.NovoEventoEntrada(funcionarioID, timezone.DiaDe(agora), agora)
	if err := uc.fila.Enfileirar(ctx, ev); err != nil {
		return nil, err
	}

	uc.log.Warn("sem conexão: entrada salva offline",
		zap.String("funcionario_id", funcionarioID.String()),
		zap.String("evento_id", ev.ID.String()),
	)
	return &ResultadoPonto{Enfileirado: true}, nil
}
