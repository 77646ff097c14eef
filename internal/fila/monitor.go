package fila

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type pingador interface {
	Ping(ctx context.Context) error
}

// Monitor observa a conectividade com o backend e dispara a sincronização
// na transição offline→online, mais uma vez na subida se já houver rede —
// o equivalente do evento "online" do navegador mais o replay no load.
type Monitor struct {
	repo      pingador
	sinc      *Sincronizador
	intervalo time.Duration
	log       *zap.Logger
}

func NewMonitor(repo pingador, sinc *Sincronizador, intervalo time.Duration, log *zap.Logger) *Monitor {
	if intervalo <= 0 {
		intervalo = 15 * time.Second
	}
	return &Monitor{
		repo:      repo,
		sinc:      sinc,
		intervalo: intervalo,
		log:       log,
	}
}

// Iniciar roda em goroutine própria até o contexto encerrar.
func (m *Monitor) Iniciar(ctx context.Context) {
	go m.loop(ctx)
}

func (m *Monitor) loop(ctx context.Context) {
	online := m.ping(ctx)
	if online {
		m.sincronizar(ctx)
	}

	ticker := time.NewTicker(m.intervalo)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			agora := m.ping(ctx)
			if agora && !online {
				m.log.Info("conexão com o backend restaurada, sincronizando pendentes")
				m.sincronizar(ctx)
			}
			online = agora
		}
	}
}

func (m *Monitor) ping(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.repo.Ping(pctx) == nil
}

func (m *Monitor) sincronizar(ctx context.Context) {
	if rel, ok := m.sinc.Sincronizar(ctx); ok {
		if rel.Sincronizados > 0 || rel.Falhas > 0 || rel.Retidos > 0 {
			m.log.Info("passada de sincronização concluída",
				zap.Int("sincronizados", rel.Sincronizados),
				zap.Int("falhas", rel.Falhas),
				zap.Int("retidos", rel.Retidos),
			)
		}
	}
}
