package timezone

import "time"

// Fuso canônico do sistema: todos os cálculos e totais usam o horário de
// Brasília, independente do fuso do navegador de quem consulta.
const Canonico = "America/Sao_Paulo"

func Localizacao() *time.Location {
	loc, err := time.LoadLocation(Canonico)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Agora() time.Time {
	return time.Now().In(Localizacao())
}

// DiaDe devolve o dia-calendário (meia-noite local) em que t cai.
func DiaDe(t time.Time) time.Time {
	t = t.In(Localizacao())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
