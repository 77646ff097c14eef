package fila

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domain "github.com/VTekSistemas01/ponto-api/internal/domain/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/models"
)

type SincronizadorConfig struct {
	// Teto de tentativas por evento. Ao atingir, o evento fica retido na
	// fila (visível só por inspeção manual) — nunca apagado em falha.
	MaxTentativas int
}

// Relatorio resume uma passada de sincronização.
type Relatorio struct {
	Sincronizados int `json:"sincronizados"`
	Falhas        int `json:"falhas"`
	Retidos       int `json:"retidos"`
}

type Sincronizador struct {
	fila *Fila
	repo domain.Repository
	cfg  SincronizadorConfig
	log  *zap.Logger

	// Garante uma única passada por vez; gatilho concorrente é ignorado
	// (replay duplicado de uma entrada violaria o turno único aberto).
	passada sync.Mutex
}

func NewSincronizador(
	fila *Fila,
	repo domain.Repository,
	cfg SincronizadorConfig,
	log *zap.Logger,
) *Sincronizador {
	if cfg.MaxTentativas <= 0 {
		cfg.MaxTentativas = 5
	}
	return &Sincronizador{
		fila: fila,
		repo: repo,
		cfg:  cfg,
		log:  log,
	}
}

// Sincronizar tenta o replay de cada evento elegível. Devolve ok=false sem
// trabalhar quando já existe passada em andamento.
func (s *Sincronizador) Sincronizar(ctx context.Context) (Relatorio, bool) {
	if !s.passada.TryLock() {
		s.log.Debug("sincronização ignorada: passada em andamento")
		return Relatorio{}, false
	}
	defer s.passada.Unlock()

	var rel Relatorio

	eventos, err := s.fila.Listar(ctx)
	if err != nil {
		s.log.Error("falha ao carregar fila pendente", zap.Error(err))
		return rel, true
	}
	if len(eventos) == 0 {
		return rel, true
	}

	s.log.Info("sincronizando registros pendentes", zap.Int("pendentes", len(eventos)))

	for _, ev := range eventos {
		if ev.Tentativas >= s.cfg.MaxTentativas {
			rel.Retidos++
			s.log.Warn("evento atingiu o teto de tentativas, retido para inspeção",
				zap.String("evento_id", ev.ID.String()),
				zap.String("tipo", string(ev.Tipo)),
				zap.Int("tentativas", ev.Tentativas),
			)
			continue
		}

		if err := s.replay(ctx, ev); err != nil {
			rel.Falhas++
			if incErr := s.fila.IncrementarTentativa(ctx, ev.ID); incErr != nil {
				s.log.Error("falha ao atualizar tentativas", zap.Error(incErr))
			}
			s.log.Warn("replay falhou",
				zap.String("evento_id", ev.ID.String()),
				zap.String("tipo", string(ev.Tipo)),
				zap.Error(err),
			)
			continue
		}

		if err := s.fila.Remover(ctx, ev.ID); err != nil {
			s.log.Error("replay ok mas falha ao remover da fila", zap.Error(err))
			continue
		}
		rel.Sincronizados++
		s.log.Info("registro sincronizado",
			zap.String("evento_id", ev.ID.String()),
			zap.String("tipo", string(ev.Tipo)),
		)
	}

	return rel, true
}

func (s *Sincronizador) replay(ctx context.Context, ev EventoPendente) error {
	switch ev.Tipo {
	case TipoSaida:
		return s.repo.FecharRegistroPorID(ctx, ev.RegistroID, ev.Saida, ev.TotalHoras)
	default:
		return s.repo.CriarRegistro(ctx, &models.RegistroPonto{
			ID:            ev.ID,
			FuncionarioID: ev.FuncionarioID,
			Data:          ev.Data,
			Entrada:       ev.Entrada,
		})
	}
}
