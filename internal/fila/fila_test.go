package fila

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore simula o slot local em memória.
type memStore struct {
	mu      sync.Mutex
	eventos []EventoPendente
}

func (s *memStore) Carregar(ctx context.Context) ([]EventoPendente, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EventoPendente, len(s.eventos))
	copy(out, s.eventos)
	return out, nil
}

func (s *memStore) Salvar(ctx context.Context, eventos []EventoPendente) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventos = make([]EventoPendente, len(eventos))
	copy(s.eventos, eventos)
	return nil
}

var _ Store = (*memStore)(nil)

func TestFilaEnfileirarERemover(t *testing.T) {
	ctx := context.Background()
	f := NewFila(&memStore{})

	ev1 := NovoEventoEntrada(uuid.New(), dia(t, "2025-03-10"), hora(t, "2025-03-10 08:00:00"))
	ev2 := NovoEventoSaida(uuid.New(), uuid.New(), hora(t, "2025-03-10 16:00:00"), 8)

	require.NoError(t, f.Enfileirar(ctx, ev1))
	require.NoError(t, f.Enfileirar(ctx, ev2))

	eventos, err := f.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, eventos, 2)

	require.NoError(t, f.Remover(ctx, ev1.ID))

	eventos, err = f.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, eventos, 1)
	assert.Equal(t, ev2.ID, eventos[0].ID)
}

func TestFilaIncrementarTentativaNuncaRemove(t *testing.T) {
	ctx := context.Background()
	f := NewFila(&memStore{})

	ev := NovoEventoEntrada(uuid.New(), dia(t, "2025-03-10"), hora(t, "2025-03-10 08:00:00"))
	require.NoError(t, f.Enfileirar(ctx, ev))

	// Muito além do teto: o evento continua na fila.
	for i := 0; i < 10; i++ {
		require.NoError(t, f.IncrementarTentativa(ctx, ev.ID))
	}

	eventos, err := f.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, eventos, 1)
	assert.Equal(t, 10, eventos[0].Tentativas)
}

func TestFilaRemoverPreservaEnfileiradosDurantePassada(t *testing.T) {
	ctx := context.Background()
	f := NewFila(&memStore{})

	ev1 := NovoEventoEntrada(uuid.New(), dia(t, "2025-03-10"), hora(t, "2025-03-10 08:00:00"))
	require.NoError(t, f.Enfileirar(ctx, ev1))

	// Evento enfileirado entre o Listar da passada e o Remover.
	ev2 := NovoEventoEntrada(uuid.New(), dia(t, "2025-03-10"), hora(t, "2025-03-10 09:00:00"))
	require.NoError(t, f.Enfileirar(ctx, ev2))

	require.NoError(t, f.Remover(ctx, ev1.ID))

	eventos, err := f.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, eventos, 1)
	assert.Equal(t, ev2.ID, eventos[0].ID)
}
