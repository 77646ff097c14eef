package ponto

import (
	"time"

	"github.com/google/uuid"

	"github.com/VTekSistemas01/ponto-api/internal/models"
	"github.com/VTekSistemas01/ponto-api/internal/timezone"
)

// ===============================
// Ações de domínio
// ===============================

// NovoRegistroEntrada monta o registro de um turno aberto começando em agora.
func NovoRegistroEntrada(funcionarioID uuid.UUID, agora time.Time) *models.RegistroPonto {
	return &models.RegistroPonto{
		ID:            uuid.New(),
		FuncionarioID: funcionarioID,
		Data:          timezone.DiaDe(agora),
		Entrada:       agora,
		Saida:         nil,
		TotalHoras:    nil,
	}
}

// FecharRegistro aplica a saída sobre um turno aberto, calculando o total.
func FecharRegistro(reg *models.RegistroPonto, saida time.Time) error {
	if err := CanRegistrarSaida(reg); err != nil {
		return err
	}

	total, err := CalcularTotalHoras(reg.Entrada, saida)
	if err != nil {
		return err
	}

	reg.Saida = &saida
	reg.TotalHoras = &total
	return nil
}
