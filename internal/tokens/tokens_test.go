package tokens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PalcoPro/band-agenda/internal/kv"
)

func TestFormTokenCicloDeVida(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemory())

	token, err := m.IssueFormToken(ctx, "ev-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	eventID, found, err := m.ResolveFormToken(ctx, token)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ev-1", eventID)

	// Uso único: consumido, o token deixa de resolver.
	require.NoError(t, m.ConsumeFormToken(ctx, token))

	_, found, err = m.ResolveFormToken(ctx, token)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFormTokenDesconhecido(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemory())

	_, found, err := m.ResolveFormToken(ctx, "token-que-nunca-existiu")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProspectingTokenCicloDeVida(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemory())

	token, err := m.IssueProspectingToken(ctx)
	require.NoError(t, err)

	assert.True(t, m.ValidateProspectingToken(ctx, token))

	require.NoError(t, m.InvalidateProspectingToken(ctx, token))
	assert.False(t, m.ValidateProspectingToken(ctx, token))
}

func TestProspectingTokenDesconhecido(t *testing.T) {
	m := NewManager(kv.NewMemory())
	assert.False(t, m.ValidateProspectingToken(context.Background(), "inventado"))
}

func TestTokensIndependentes(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemory())

	form, err := m.IssueFormToken(ctx, "ev-1")
	require.NoError(t, err)

	// O mesmo valor não vale como token de prospecção: os prefixos
	// separam os dois espaços de chave.
	assert.False(t, m.ValidateProspectingToken(ctx, form))
}
