package fila

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Store persiste a fila inteira em um único slot nomeado, lido e gravado
// por inteiro a cada operação.
type Store interface {
	Carregar(ctx context.Context) ([]EventoPendente, error)
	Salvar(ctx context.Context, eventos []EventoPendente) error
}

// --------------------------------------------------
// Redis (slot local do quiosque)
// --------------------------------------------------

type RedisStore struct {
	cli   *redis.Client
	chave string
}

func NewRedisStore(cli *redis.Client, chave string) *RedisStore {
	return &RedisStore{cli: cli, chave: chave}
}

func (s *RedisStore) Carregar(ctx context.Context) ([]EventoPendente, error) {
	raw, err := s.cli.Get(ctx, s.chave).Bytes()
	if errors.Is(err, redis.Nil) {
		return []EventoPendente{}, nil
	}
	if err != nil {
		return nil, err
	}

	var eventos []EventoPendente
	if err := json.Unmarshal(raw, &eventos); err != nil {
		return nil, err
	}
	return eventos, nil
}

func (s *RedisStore) Salvar(ctx context.Context, eventos []EventoPendente) error {
	raw, err := json.Marshal(eventos)
	if err != nil {
		return err
	}
	return s.cli.Set(ctx, s.chave, raw, 0).Err()
}

var _ Store = (*RedisStore)(nil)

// --------------------------------------------------
// Fila — acesso serializado ao slot
// --------------------------------------------------

// Fila é compartilhada entre o fluxo de ponto (produtor, em falha de rede)
// e o sincronizador (consumidor); todo acesso passa pelo mutex para não
// perder atualizações quando os dois correm sobre o mesmo slot.
type Fila struct {
	mu    sync.Mutex
	store Store
}

func NewFila(store Store) *Fila {
	return &Fila{store: store}
}

func (f *Fila) Enfileirar(ctx context.Context, ev EventoPendente) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	eventos, err := f.store.Carregar(ctx)
	if err != nil {
		return err
	}
	eventos = append(eventos, ev)
	return f.store.Salvar(ctx, eventos)
}

func (f *Fila) Listar(ctx context.Context) ([]EventoPendente, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.Carregar(ctx)
}

// Remover tira o evento da fila após replay bem-sucedido.
func (f *Fila) Remover(ctx context.Context, id uuid.UUID) error {
	return f.atualizar(ctx, id, nil)
}

// IncrementarTentativa registra mais uma falha de replay. O evento nunca é
// descartado: ao atingir o teto ele apenas deixa de ser elegível.
func (f *Fila) IncrementarTentativa(ctx context.Context, id uuid.UUID) error {
	return f.atualizar(ctx, id, func(ev *EventoPendente) {
		ev.Tentativas++
	})
}

// atualizar relê o slot antes de gravar, para não sobrescrever eventos
// enfileirados durante um replay em andamento. fn nil remove o evento.
func (f *Fila) atualizar(ctx context.Context, id uuid.UUID, fn func(*EventoPendente)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	eventos, err := f.store.Carregar(ctx)
	if err != nil {
		return err
	}

	out := eventos[:0]
	for i := range eventos {
		if eventos[i].ID != id {
			out = append(out, eventos[i])
			continue
		}
		if fn != nil {
			fn(&eventos[i])
			out = append(out, eventos[i])
		}
	}
	return f.store.Salvar(ctx, out)
}
