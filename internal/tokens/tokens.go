// Package tokens gerencia os tokens de uso único dos fluxos públicos:
// o token de formulário do contratante (amarrado a um evento) e o token
// de prospecção (lead anônimo). Ambos vivem no armazenamento
// chave-valor, sem expiração por tempo.
package tokens

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/PalcoPro/band-agenda/internal/kv"
)

const (
	formPrefix     = "form_token:"
	prospectPrefix = "prospect_token:"
)

type prospectPayload struct {
	Valid     bool      `json:"valid"`
	CreatedAt time.Time `json:"created_at"`
}

type Manager struct {
	store kv.Store
}

func NewManager(store kv.Store) *Manager {
	return &Manager{store: store}
}

// ===============================
// Form token (contratante)
// ===============================

func (m *Manager) IssueFormToken(ctx context.Context, eventID string) (string, error) {
	token := uuid.NewString()
	if err := m.store.Set(ctx, formPrefix+token, eventID, 0); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveFormToken devolve o ID do evento amarrado ao token.
func (m *Manager) ResolveFormToken(ctx context.Context, token string) (string, bool, error) {
	return m.store.Get(ctx, formPrefix+token)
}

// ConsumeFormToken apaga o token após a submissão bem-sucedida,
// tornando o link de uso único.
func (m *Manager) ConsumeFormToken(ctx context.Context, token string) error {
	return m.store.Del(ctx, formPrefix+token)
}

// ===============================
// Prospecting token (lead)
// ===============================

func (m *Manager) IssueProspectingToken(ctx context.Context) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(prospectPayload{
		Valid:     true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	if err := m.store.Set(ctx, prospectPrefix+token, string(payload), 0); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateProspectingToken checa apenas a flag gravada; não há
// expiração por tempo.
func (m *Manager) ValidateProspectingToken(ctx context.Context, token string) bool {
	raw, found, err := m.store.Get(ctx, prospectPrefix+token)
	if err != nil || !found {
		return false
	}

	var p prospectPayload
	if json.Unmarshal([]byte(raw), &p) != nil {
		return false
	}
	return p.Valid
}

// InvalidateProspectingToken é chamado uma única vez, após a submissão
// pública dar certo.
func (m *Manager) InvalidateProspectingToken(ctx context.Context, token string) error {
	return m.store.Del(ctx, prospectPrefix+token)
}
