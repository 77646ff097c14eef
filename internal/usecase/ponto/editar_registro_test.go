package ponto

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VTekSistemas01/ponto-api/internal/audit"
	"github.com/VTekSistemas01/ponto-api/internal/httperr"
	"github.com/VTekSistemas01/ponto-api/internal/models"
	"github.com/VTekSistemas01/ponto-api/internal/timezone"
)

type audFake struct {
	registrarErr error
	registros    []audit.Alteracao

	historico    []models.HistoricoAlteracao
	historicoErr error
}

func (a *audFake) Registrar(ctx context.Context, alt audit.Alteracao) error {
	if a.registrarErr != nil {
		return a.registrarErr
	}
	a.registros = append(a.registros, alt)
	return nil
}

func (a *audFake) Historico(ctx context.Context, tabela string, registroID uuid.UUID) ([]models.HistoricoAlteracao, error) {
	return a.historico, a.historicoErr
}

func registroFechado(t *testing.T) *models.RegistroPonto {
	t.Helper()
	loc := timezone.Localizacao()
	entrada := time.Date(2025, 3, 10, 8, 0, 0, 0, loc)
	saida := time.Date(2025, 3, 10, 16, 0, 0, 0, loc)
	total := 8.0
	return &models.RegistroPonto{
		ID:            uuid.New(),
		FuncionarioID: uuid.New(),
		Data:          timezone.DiaDe(entrada),
		Entrada:       entrada,
		Saida:         &saida,
		TotalHoras:    &total,
	}
}

func novoEditar(repo *repoFake, aud *audFake) *EditarRegistro {
	return NewEditarRegistro(repo, aud, zap.NewNop())
}

func TestEditarRegistroValidacoes(t *testing.T) {
	reg := registroFechado(t)
	repo := &repoFake{porID: map[uuid.UUID]*models.RegistroPonto{reg.ID: reg}}
	uc := novoEditar(repo, &audFake{})

	loc := timezone.Localizacao()
	novo := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)

	casos := []struct {
		nome string
		in   EditarRegistroInput
		code string
	}{
		{
			nome: "campo invalido",
			in:   EditarRegistroInput{RegistroID: reg.ID, Campo: "pago", NovoValor: novo, Motivo: "x", AdminNome: "Admin"},
			code: "campo_invalido",
		},
		{
			nome: "horario obrigatorio",
			in:   EditarRegistroInput{RegistroID: reg.ID, Campo: "entrada", Motivo: "x", AdminNome: "Admin"},
			code: "horario_obrigatorio",
		},
		{
			nome: "motivo obrigatorio",
			in:   EditarRegistroInput{RegistroID: reg.ID, Campo: "entrada", NovoValor: novo, Motivo: "   ", AdminNome: "Admin"},
			code: "motivo_obrigatorio",
		},
		{
			nome: "registro nao encontrado",
			in:   EditarRegistroInput{RegistroID: uuid.New(), Campo: "entrada", NovoValor: novo, Motivo: "x", AdminNome: "Admin"},
			code: "registro_nao_encontrado",
		},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), c.in)
			assert.True(t, httperr.IsBusiness(err, c.code), "esperava %s, veio %v", c.code, err)
		})
	}

	assert.Empty(t, repo.salvos)
}

func TestEditarRegistroRecalculaTotal(t *testing.T) {
	reg := registroFechado(t)
	repo := &repoFake{porID: map[uuid.UUID]*models.RegistroPonto{reg.ID: reg}}
	aud := &audFake{}
	uc := novoEditar(repo, aud)

	novaEntrada := time.Date(2025, 3, 10, 9, 30, 0, 0, timezone.Localizacao())
	entradaOriginal := reg.Entrada

	out, err := uc.Execute(context.Background(), EditarRegistroInput{
		RegistroID: reg.ID,
		Campo:      "entrada",
		NovoValor:  novaEntrada,
		Motivo:     "esqueceu de bater",
		AdminNome:  "Admin",
	})
	require.NoError(t, err)
	assert.True(t, out.AuditoriaRegistrada)

	require.NotNil(t, out.Registro.TotalHoras)
	assert.Equal(t, 6.5, *out.Registro.TotalHoras)

	assert.True(t, out.Registro.Editado)
	assert.Equal(t, "Admin", out.Registro.EditadoPor)
	require.NotNil(t, out.Registro.EditadoEm)

	require.Len(t, repo.salvos, 1)

	require.Len(t, aud.registros, 1)
	alt := aud.registros[0]
	assert.Equal(t, "registros_ponto", alt.Tabela)
	assert.Equal(t, reg.ID, alt.RegistroID)
	assert.Equal(t, "entrada", alt.CampoAlterado)
	assert.Equal(t, entradaOriginal.Format(time.RFC3339), alt.ValorAnterior)
	assert.Equal(t, novaEntrada.Format(time.RFC3339), alt.ValorNovo)
	require.NotNil(t, alt.Motivo)
	assert.Equal(t, "esqueceu de bater", *alt.Motivo)
}

func TestEditarRegistroTurnoAbertoFicaSemTotal(t *testing.T) {
	reg := registroFechado(t)
	reg.Saida = nil
	reg.TotalHoras = nil
	repo := &repoFake{porID: map[uuid.UUID]*models.RegistroPonto{reg.ID: reg}}
	uc := novoEditar(repo, &audFake{})

	novaEntrada := time.Date(2025, 3, 10, 7, 0, 0, 0, timezone.Localizacao())

	out, err := uc.Execute(context.Background(), EditarRegistroInput{
		RegistroID: reg.ID,
		Campo:      "entrada",
		NovoValor:  novaEntrada,
		Motivo:     "ajuste",
		AdminNome:  "Admin",
	})
	require.NoError(t, err)
	assert.Nil(t, out.Registro.TotalHoras)
	assert.Nil(t, out.Registro.Saida)
}

func TestEditarRegistroNegativoRejeitadoAntesDePersistir(t *testing.T) {
	reg := registroFechado(t)
	repo := &repoFake{porID: map[uuid.UUID]*models.RegistroPonto{reg.ID: reg}}
	aud := &audFake{}
	uc := novoEditar(repo, aud)

	// Saída antes da entrada original (08:00).
	novaSaida := time.Date(2025, 3, 10, 6, 0, 0, 0, timezone.Localizacao())

	_, err := uc.Execute(context.Background(), EditarRegistroInput{
		RegistroID: reg.ID,
		Campo:      "saida",
		NovoValor:  novaSaida,
		Motivo:     "ajuste",
		AdminNome:  "Admin",
	})
	assert.True(t, httperr.IsBusiness(err, "saida_antes_da_entrada"))
	assert.Empty(t, repo.salvos)
	assert.Empty(t, aud.registros)
}

func TestEditarRegistroAuditoriaFalhaNaoDesfazEdicao(t *testing.T) {
	reg := registroFechado(t)
	repo := &repoFake{porID: map[uuid.UUID]*models.RegistroPonto{reg.ID: reg}}
	aud := &audFake{registrarErr: errors.New("rpc fora do ar")}
	uc := novoEditar(repo, aud)

	novaSaida := time.Date(2025, 3, 10, 17, 0, 0, 0, timezone.Localizacao())

	out, err := uc.Execute(context.Background(), EditarRegistroInput{
		RegistroID: reg.ID,
		Campo:      "saida",
		NovoValor:  novaSaida,
		Motivo:     "hora extra",
		AdminNome:  "Admin",
	})

	// Sucesso degradado: a edição fica, o aviso vai no retorno.
	require.NoError(t, err)
	assert.False(t, out.AuditoriaRegistrada)
	require.Len(t, repo.salvos, 1)
	require.NotNil(t, out.Registro.TotalHoras)
	assert.Equal(t, 9.0, *out.Registro.TotalHoras)
}

func TestConsultarHistoricoNuncaErra(t *testing.T) {
	t.Run("falha remota vira lista vazia", func(t *testing.T) {
		uc := NewConsultarHistorico(&audFake{historicoErr: errors.New("rpc fora do ar")}, zap.NewNop())
		hist := uc.Execute(context.Background(), uuid.New())
		assert.NotNil(t, hist)
		assert.Empty(t, hist)
	})

	t.Run("sem alteracoes vira lista vazia", func(t *testing.T) {
		uc := NewConsultarHistorico(&audFake{}, zap.NewNop())
		hist := uc.Execute(context.Background(), uuid.New())
		assert.NotNil(t, hist)
		assert.Empty(t, hist)
	})

	t.Run("devolve o que a rpc trouxe", func(t *testing.T) {
		registroID := uuid.New()
		esperado := []models.HistoricoAlteracao{
			{ID: uuid.New(), Tabela: "registros_ponto", RegistroID: registroID, CampoAlterado: "entrada"},
		}
		uc := NewConsultarHistorico(&audFake{historico: esperado}, zap.NewNop())
		hist := uc.Execute(context.Background(), registroID)
		assert.Equal(t, esperado, hist)
	})
}
