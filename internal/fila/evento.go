package fila

import (
	"time"

	"github.com/google/uuid"
)

type TipoEvento string

const (
	TipoEntrada TipoEvento = "entrada"
	TipoSaida   TipoEvento = "saida"
)

// EventoPendente é um registro de ponto que não alcançou o backend e
// aguarda sincronização. Vive apenas no armazenamento local do quiosque.
type EventoPendente struct {
	ID   uuid.UUID  `json:"id"`
	Tipo TipoEvento `json:"tipo"`

	FuncionarioID uuid.UUID `json:"funcionario_id"`

	// Payload de entrada
	Data    time.Time `json:"data,omitempty"`
	Entrada time.Time `json:"entrada,omitempty"`

	// Payload de saída
	RegistroID uuid.UUID `json:"registro_id,omitempty"`
	Saida      time.Time `json:"saida,omitempty"`
	TotalHoras float64   `json:"total_horas,omitempty"`

	EnfileiradoEm time.Time `json:"enfileirado_em"`
	Tentativas    int       `json:"tentativas"`
}

func NovoEventoEntrada(funcionarioID uuid.UUID, data, entrada time.Time) EventoPendente {
	return EventoPendente{
		ID:            uuid.New(),
		Tipo:          TipoEntrada,
		FuncionarioID: funcionarioID,
		Data:          data,
		Entrada:       entrada,
		EnfileiradoEm: time.Now(),
	}
}

func NovoEventoSaida(funcionarioID, registroID uuid.UUID, saida time.Time, totalHoras float64) EventoPendente {
	return EventoPendente{
		ID:            uuid.New(),
		Tipo:          TipoSaida,
		FuncionarioID: funcionarioID,
		RegistroID:    registroID,
		Saida:         saida,
		TotalHoras:    totalHoras,
		EnfileiradoEm: time.Now(),
	}
}
