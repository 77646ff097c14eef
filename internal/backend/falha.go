// Package backend classifica falhas de chamadas ao banco remoto.
//
// O retry/enfileiramento decide pelo tipo da falha, nunca pelo texto da
// mensagem: só falhas de conectividade vão para a fila offline; validação
// e conflito são definitivos.
package backend

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

type Falha int

const (
	Ok Falha = iota
	// Conectividade: a requisição não alcançou o backend (rede fora,
	// timeout, conexão derrubada). Elegível para fila offline.
	Conectividade
	// Conflito: o backend recusou por violar uma regra (chave duplicada,
	// exclusão). Nunca re-tentado.
	Conflito
	// Interna: erro SQL/backend que não é rede nem conflito.
	Interna
)

func (f Falha) String() string {
	switch f {
	case Ok:
		return "ok"
	case Conectividade:
		return "conectividade"
	case Conflito:
		return "conflito"
	default:
		return "interna"
	}
}

// Classificar mapeia um erro de escrita/leitura no backend para uma Falha.
func Classificar(err error) Falha {
	if err == nil {
		return Ok
	}

	// Erro SQL chegou ao servidor: não é problema de rede.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23P01": // unique_violation, exclusion_violation
			return Conflito
		}
		return Interna
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Conectividade
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Conectividade
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Conectividade
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Conectividade
	}

	return Interna
}

// EhConectividade é o teste usado nos pontos de decisão fila-ou-erro.
func EhConectividade(err error) bool {
	return Classificar(err) == Conectividade
}
