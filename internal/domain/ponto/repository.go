package ponto

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VTekSistemas01/ponto-api/internal/models"
)

type Repository interface {
	// -------- Funcionário --------
	ValidarPin(
		ctx context.Context,
		nome string,
		pin string,
	) (*models.Funcionario, error)

	ListarFuncionariosAtivos(
		ctx context.Context,
	) ([]models.Funcionario, error)

	// -------- Registro (turno aberto) --------
	// Busca por funcionário + saída nula, entrada mais recente primeiro,
	// limit 1 — sem filtrar pelo dia, para cobrir turno noturno.
	// Devolve nil (sem erro) quando não há turno aberto.
	BuscarRegistroAberto(
		ctx context.Context,
		funcionarioID uuid.UUID,
	) (*models.RegistroPonto, error)

	// -------- Registro (escritas) --------
	CriarRegistro(
		ctx context.Context,
		reg *models.RegistroPonto,
	) error

	// FecharRegistroPorID grava saída/total direto no registro alvo;
	// é o replay do evento de saída enfileirado.
	FecharRegistroPorID(
		ctx context.Context,
		registroID uuid.UUID,
		saida time.Time,
		totalHoras float64,
	) error

	SalvarRegistro(
		ctx context.Context,
		reg *models.RegistroPonto,
	) error

	// -------- Registro (leituras) --------
	BuscarRegistroPorID(
		ctx context.Context,
		registroID uuid.UUID,
	) (*models.RegistroPonto, error)

	BuscarUltimoRegistro(
		ctx context.Context,
		funcionarioID uuid.UUID,
	) (*models.RegistroPonto, error)

	// -------- Conectividade --------
	Ping(ctx context.Context) error
}
