package ponto

import (
	"github.com/VTekSistemas01/ponto-api/internal/httperr"
	"github.com/VTekSistemas01/ponto-api/internal/models"
)

// ===============================
// Estado do turno
// ===============================

type Status string

const (
	StatusAberto  Status = "aberto"
	StatusFechado Status = "fechado"
)

func StatusDe(reg *models.RegistroPonto) Status {
	if reg != nil && reg.Saida == nil {
		return StatusAberto
	}
	return StatusFechado
}

// ===============================
// Validações de transição
// ===============================

// CanRegistrarEntrada recusa uma nova entrada enquanto existir turno aberto
// (guarda contra entrada duplicada).
func CanRegistrarEntrada(aberto *models.RegistroPonto) error {
	if aberto != nil {
		return httperr.ErrBusiness("entrada_em_aberto")
	}
	return nil
}

// CanRegistrarSaida exige um turno aberto para fechar.
func CanRegistrarSaida(aberto *models.RegistroPonto) error {
	if aberto == nil {
		return httperr.ErrBusiness("entrada_obrigatoria")
	}
	if aberto.Saida != nil {
		return httperr.ErrBusiness("registro_ja_fechado")
	}
	return nil
}
