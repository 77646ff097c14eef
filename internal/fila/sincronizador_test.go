package fila

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VTekSistemas01/ponto-api/internal/models"
	"github.com/VTekSistemas01/ponto-api/internal/timezone"
)

func hora(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", s, timezone.Localizacao())
	require.NoError(t, err)
	return ts
}

func dia(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02", s, timezone.Localizacao())
	require.NoError(t, err)
	return ts
}

// repoStub cobre só o que o sincronizador usa; o resto nunca é chamado.
type repoStub struct {
	criar  func(ctx context.Context, reg *models.RegistroPonto) error
	fechar func(ctx context.Context, registroID uuid.UUID, saida time.Time, totalHoras float64) error
}

func (r *repoStub) CriarRegistro(ctx context.Context, reg *models.RegistroPonto) error {
	return r.criar(ctx, reg)
}

func (r *repoStub) FecharRegistroPorID(ctx context.Context, registroID uuid.UUID, saida time.Time, totalHoras float64) error {
	return r.fechar(ctx, registroID, saida, totalHoras)
}

func (r *repoStub) ValidarPin(ctx context.Context, nome, pin string) (*models.Funcionario, error) {
	panic("não usado")
}

func (r *repoStub) ListarFuncionariosAtivos(ctx context.Context) ([]models.Funcionario, error) {
	panic("não usado")
}

func (r *repoStub) BuscarRegistroAberto(ctx context.Context, funcionarioID uuid.UUID) (*models.RegistroPonto, error) {
	panic("não usado")
}

func (r *repoStub) SalvarRegistro(ctx context.Context, reg *models.RegistroPonto) error {
	panic("não usado")
}

func (r *repoStub) BuscarRegistroPorID(ctx context.Context, registroID uuid.UUID) (*models.RegistroPonto, error) {
	panic("não usado")
}

func (r *repoStub) BuscarUltimoRegistro(ctx context.Context, funcionarioID uuid.UUID) (*models.RegistroPonto, error) {
	panic("não usado")
}

func (r *repoStub) Ping(ctx context.Context) error { return nil }

func novoSincronizador(t *testing.T, f *Fila, repo *repoStub) *Sincronizador {
	t.Helper()
	return NewSincronizador(f, repo, SincronizadorConfig{MaxTentativas: 5}, zap.NewNop())
}

func TestSincronizarReplaySucesso(t *testing.T) {
	ctx := context.Background()
	f := NewFila(&memStore{})

	entrada := NovoEventoEntrada(uuid.New(), dia(t, "2025-03-10"), hora(t, "2025-03-10 08:00:00"))
	saida := NovoEventoSaida(uuid.New(), uuid.New(), hora(t, "2025-03-10 16:00:00"), 8)
	require.NoError(t, f.Enfileirar(ctx, entrada))
	require.NoError(t, f.Enfileirar(ctx, saida))

	var criados []*models.RegistroPonto
	var fechados []uuid.UUID

	repo := &repoStub{
		criar: func(ctx context.Context, reg *models.RegistroPonto) error {
			criados = append(criados, reg)
			return nil
		},
		fechar: func(ctx context.Context, registroID uuid.UUID, s time.Time, total float64) error {
			fechados = append(fechados, registroID)
			assert.Equal(t, 8.0, total)
			return nil
		},
	}

	rel, ok := novoSincronizador(t, f, repo).Sincronizar(ctx)
	require.True(t, ok)
	assert.Equal(t, Relatorio{Sincronizados: 2}, rel)

	// O replay da entrada reaproveita o ID do evento (idempotência).
	require.Len(t, criados, 1)
	assert.Equal(t, entrada.ID, criados[0].ID)
	assert.Equal(t, entrada.FuncionarioID, criados[0].FuncionarioID)

	require.Len(t, fechados, 1)
	assert.Equal(t, saida.RegistroID, fechados[0])

	eventos, err := f.Listar(ctx)
	require.NoError(t, err)
	assert.Empty(t, eventos)
}

func TestSincronizarFalhaIncrementaSemRemover(t *testing.T) {
	ctx := context.Background()
	f := NewFila(&memStore{})

	ev := NovoEventoEntrada(uuid.New(), dia(t, "2025-03-10"), hora(t, "2025-03-10 08:00:00"))
	require.NoError(t, f.Enfileirar(ctx, ev))

	repo := &repoStub{
		criar: func(ctx context.Context, reg *models.RegistroPonto) error {
			return errors.New("backend fora")
		},
	}

	rel, ok := novoSincronizador(t, f, repo).Sincronizar(ctx)
	require.True(t, ok)
	assert.Equal(t, Relatorio{Falhas: 1}, rel)

	eventos, err := f.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, eventos, 1)
	assert.Equal(t, 1, eventos[0].Tentativas)
}

func TestSincronizarTetoRetemSemReplay(t *testing.T) {
	ctx := context.Background()
	f := NewFila(&memStore{})

	ev := NovoEventoEntrada(uuid.New(), dia(t, "2025-03-10"), hora(t, "2025-03-10 08:00:00"))
	ev.Tentativas = 5
	require.NoError(t, f.Enfileirar(ctx, ev))

	repo := &repoStub{
		criar: func(ctx context.Context, reg *models.RegistroPonto) error {
			t.Fatal("evento retido não deve ser re-tentado")
			return nil
		},
	}

	rel, ok := novoSincronizador(t, f, repo).Sincronizar(ctx)
	require.True(t, ok)
	assert.Equal(t, Relatorio{Retidos: 1}, rel)

	// Retido continua na fila, com as tentativas intactas.
	eventos, err := f.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, eventos, 1)
	assert.Equal(t, 5, eventos[0].Tentativas)
}

func TestSincronizarPassadaUnica(t *testing.T) {
	ctx := context.Background()
	f := NewFila(&memStore{})

	ev := NovoEventoEntrada(uuid.New(), dia(t, "2025-03-10"), hora(t, "2025-03-10 08:00:00"))
	require.NoError(t, f.Enfileirar(ctx, ev))

	iniciou := make(chan struct{})
	libera := make(chan struct{})

	repo := &repoStub{
		criar: func(ctx context.Context, reg *models.RegistroPonto) error {
			close(iniciou)
			<-libera
			return nil
		},
	}

	sinc := novoSincronizador(t, f, repo)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, ok := sinc.Sincronizar(ctx)
		assert.True(t, ok)
	}()

	<-iniciou

	// Gatilho concorrente durante a passada em voo é ignorado.
	_, ok := sinc.Sincronizar(ctx)
	assert.False(t, ok)

	close(libera)
	<-done
}
