package ponto

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VTekSistemas01/ponto-api/internal/audit"
	domain "github.com/VTekSistemas01/ponto-api/internal/domain/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/httperr"
	"github.com/VTekSistemas01/ponto-api/internal/models"
	"github.com/VTekSistemas01/ponto-api/internal/timezone"
)

// Auditoria é o livro-razão visto pelos usecases.
type Auditoria interface {
	Registrar(ctx context.Context, alt audit.Alteracao) error
	Historico(ctx context.Context, tabela string, registroID uuid.UUID) ([]models.HistoricoAlteracao, error)
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type EditarRegistroInput struct {
	RegistroID uuid.UUID
	Campo      string // "entrada" | "saida"
	NovoValor  time.Time
	Motivo     string
	AdminNome  string
}

type EditarRegistroOutput struct {
	Registro *models.RegistroPonto
	// false = edição persistida mas o histórico não foi lavrado
	// (sucesso degradado; o operador precisa saber, não é rollback).
	AuditoriaRegistrada bool
}

// ======================================================
// USE CASE
// ======================================================

type EditarRegistro struct {
	repo domain.Repository
	aud  Auditoria
	log  *zap.Logger
}

func NewEditarRegistro(
	repo domain.Repository,
	aud Auditoria,
	log *zap.Logger,
) *EditarRegistro {
	return &EditarRegistro{
		repo: repo,
		aud:  aud,
		log:  log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EditarRegistro) Execute(
	ctx context.Context,
	in EditarRegistroInput,
) (*EditarRegistroOutput, error) {

	// --------------------------------------------------
	// 1. Validações — nada é persistido se falharem
	// --------------------------------------------------
	if in.Campo != "entrada" && in.Campo != "saida" {
		return nil, httperr.ErrBusiness("campo_invalido")
	}
	if in.NovoValor.IsZero() {
		return nil, httperr.ErrBusiness("horario_obrigatorio")
	}
	if strings.TrimSpace(in.Motivo) == "" {
		return nil, httperr.ErrBusiness("motivo_obrigatorio")
	}

	reg, err := uc.repo.BuscarRegistroPorID(ctx, in.RegistroID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, httperr.ErrBusiness("registro_nao_encontrado")
	}

	// --------------------------------------------------
	// 2. Novos limites + recálculo do total
	// --------------------------------------------------
	novoValor := in.NovoValor.In(timezone.Localizacao())
	valorAnterior := formatarLimite(reg, in.Campo)

	entrada := reg.Entrada
	saida := reg.Saida
	if in.Campo == "entrada" {
		entrada = novoValor
	} else {
		saida = &novoValor
	}

	if saida != nil {
		total, err := domain.CalcularTotalHoras(entrada, *saida)
		if err != nil {
			// Duração negativa: rejeita ANTES de persistir.
			return nil, err
		}
		reg.TotalHoras = &total
	} else {
		reg.TotalHoras = nil
	}

	agora := timezone.Agora()
	reg.Entrada = entrada
	reg.Saida = saida
	reg.Editado = true
	reg.EditadoPor = in.AdminNome
	reg.EditadoEm = &agora

	// --------------------------------------------------
	// 3. Persiste a correção
	// --------------------------------------------------
	if err := uc.repo.SalvarRegistro(ctx, reg); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Auditoria — melhor esforço, nunca desfaz o passo 3
	// --------------------------------------------------
	motivo := in.Motivo
	alt := audit.Alteracao{
		Tabela:        "registros_ponto",
		RegistroID:    reg.ID,
		FuncionarioID: &reg.FuncionarioID,
		AdminNome:     in.AdminNome,
		CampoAlterado: in.Campo,
		ValorAnterior: valorAnterior,
		ValorNovo:     novoValor.Format(time.RFC3339),
		Motivo:        &motivo,
	}

	if err := uc.aud.Registrar(ctx, alt); err != nil {
		uc.log.Warn("edição salva, mas auditoria falhou",
			zap.String("registro_id", reg.ID.String()),
			zap.String("campo", in.Campo),
			zap.Error(err),
		)
		return &EditarRegistroOutput{Registro: reg, AuditoriaRegistrada: false}, nil
	}

	return &EditarRegistroOutput{Registro: reg, AuditoriaRegistrada: true}, nil
}

func formatarLimite(reg *models.RegistroPonto, campo string) string {
	if campo == "entrada" {
		return reg.Entrada.Format(time.RFC3339)
	}
	if reg.Saida == nil {
		return "null"
	}
	return reg.Saida.Format(time.RFC3339)
}
