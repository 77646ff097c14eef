package ponto

import (
	"fmt"
	"math"
	"time"

	"github.com/VTekSistemas01/ponto-api/internal/httperr"
)

// CalcularTotalHoras devolve as horas decimais (2 casas) entre entrada e
// saída por subtração real de timestamps — turnos que atravessam a
// meia-noite saem corretos sem aritmética de datas.
//
// Saída anterior à entrada é anomalia de dados (relógio torto ou digitação):
// erro fatal, nunca truncado para zero.
func CalcularTotalHoras(entrada, saida time.Time) (float64, error) {
	horas := saida.Sub(entrada).Hours()
	if horas < 0 {
		return 0, httperr.ErrBusiness("saida_antes_da_entrada")
	}
	return math.Round(horas*100) / 100, nil
}

// FormatarHoras exibe o total decimal como "7h 30min" (horas inteiras +
// minutos arredondados, com vai-um quando o arredondamento fecha 60).
func FormatarHoras(total float64) string {
	h := int(math.Floor(total))
	m := int(math.Round((total - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %02dmin", h, m)
}
