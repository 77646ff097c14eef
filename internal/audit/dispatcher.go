package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Dispatcher grava alterações secundárias (pagamento, valor/hora,
// desativação) em segundo plano, melhor-esforço. Edições de horário NÃO
// passam por aqui: essas precisam reportar a falha de auditoria ao
// chamador e usam Logger.Registrar direto.
type Dispatcher struct {
	logger *Logger
	queue  chan Alteracao
	log    *zap.Logger
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Alteracao, 100),
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for alt := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.logger.Registrar(ctx, alt); err != nil {
			d.log.Warn("auditoria em segundo plano falhou",
				zap.String("campo", alt.CampoAlterado),
				zap.String("registro_id", alt.RegistroID.String()),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(alt Alteracao) {
	select {
	case d.queue <- alt:
		// enviado
	default:
		// fila cheia → descartamos a auditoria secundária (nunca travar a API)
		d.log.Warn("fila de auditoria cheia, evento descartado",
			zap.String("campo", alt.CampoAlterado),
		)
	}
}
