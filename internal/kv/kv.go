// Package kv é a porta do armazenamento chave-valor usado por sessões
// e tokens de compartilhamento: um blob por chave lógica, sem protocolo
// externo.
package kv

import (
	"context"
	"time"
)

type Store interface {
	// Get devolve (valor, encontrado, erro). Chave ausente não é erro.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set grava com TTL opcional; ttl zero significa sem expiração.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	Del(ctx context.Context, key string) error
}
