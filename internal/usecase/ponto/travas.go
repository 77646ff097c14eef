package ponto

import (
	"sync"

	"github.com/google/uuid"
)

// Travas serializa as operações de ponto por funcionário: enquanto uma
// entrada/saída dele está em voo, outra espera — é a seção crítica que no
// navegador era o desabilitar de botões durante a operação.
type Travas struct {
	mu             sync.Mutex
	porFuncionario map[uuid.UUID]*sync.Mutex
}

func NewTravas() *Travas {
	return &Travas{
		porFuncionario: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Travar bloqueia a trava do funcionário e devolve a função que a solta.
func (t *Travas) Travar(funcionarioID uuid.UUID) func() {
	t.mu.Lock()
	trava, ok := t.porFuncionario[funcionarioID]
	if !ok {
		trava = &sync.Mutex{}
		t.porFuncionario[funcionarioID] = trava
	}
	t.mu.Unlock()

	trava.Lock()
	return trava.Unlock
}
