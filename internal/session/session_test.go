package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/PalcoPro/band-agenda/internal/kv"
	"github.com/PalcoPro/band-agenda/internal/models"
)

type fakeUserFinder struct {
	users map[string]models.User
}

func (f *fakeUserFinder) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func newTestManager(t *testing.T, users ...models.User) *Manager {
	t.Helper()

	finder := &fakeUserFinder{users: make(map[string]models.User)}
	for _, u := range users {
		finder.users[u.Email] = u
	}
	return NewManager(finder, kv.NewMemory(), "segredo-de-teste")
}

func testUser(t *testing.T, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return models.User{
		ID:           "u-1",
		Name:         "Ana",
		Email:        "ana@exemplo.com",
		PasswordHash: string(hash),
		Role:         models.RoleManager,
		Status:       models.UserStatusActive,
		BandIDs:      []string{"band-a"},
	}
}

func TestLoginECurrent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, testUser(t, "senha123"))

	user, token, err := m.Login(ctx, "ana@exemplo.com", "senha123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "u-1", user.ID)

	claims, err := m.Current(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Equal(t, []string{"band-a"}, claims.BandIDs)

	snapshot := claims.UserSnapshot()
	assert.Equal(t, "Ana", snapshot.Name)
	assert.Equal(t, models.RoleManager, snapshot.Role)
}

func TestLoginNormalizaEmail(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, testUser(t, "senha123"))

	_, token, err := m.Login(ctx, "  ANA@Exemplo.COM  ", "senha123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginSenhaCaseSensitive(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, testUser(t, "Senha123"))

	_, _, err := m.Login(ctx, "ana@exemplo.com", "senha123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = m.Login(ctx, "ana@exemplo.com", "Senha123")
	assert.NoError(t, err)
}

func TestLoginErroGenerico(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, testUser(t, "senha123"))

	// Usuário inexistente e senha errada produzem o mesmo erro.
	_, _, errNoUser := m.Login(ctx, "ninguem@exemplo.com", "senha123")
	_, _, errBadPass := m.Login(ctx, "ana@exemplo.com", "errada")

	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.ErrorIs(t, errBadPass, ErrInvalidCredentials)
}

func TestLoginPendente(t *testing.T) {
	ctx := context.Background()
	u := testUser(t, "senha123")
	u.Status = models.UserStatusPending
	m := newTestManager(t, u)

	_, _, err := m.Login(ctx, "ana@exemplo.com", "senha123")
	assert.ErrorIs(t, err, ErrPendingApproval)
}

func TestSessaoExpiraEm24h(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, testUser(t, "senha123"))

	base := time.Now()
	m.now = func() time.Time { return base }

	_, token, err := m.Login(ctx, "ana@exemplo.com", "senha123")
	require.NoError(t, err)

	// Um pouco antes do limite a sessão ainda vale.
	m.now = func() time.Time { return base.Add(TTL - time.Minute) }
	_, err = m.Current(ctx, token)
	assert.NoError(t, err)

	// Passou das 24h: a leitura derruba a sessão.
	m.now = func() time.Time { return base.Add(TTL + time.Minute) }
	_, err = m.Current(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogoutInvalidaNoServidor(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, testUser(t, "senha123"))

	_, token, err := m.Login(ctx, "ana@exemplo.com", "senha123")
	require.NoError(t, err)

	m.Logout(ctx, token)

	// O JWT em si continua dentro da validade, mas o registro sumiu.
	_, err = m.Current(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogoutTokenInvalidoNaoExplode(t *testing.T) {
	m := newTestManager(t)
	m.Logout(context.Background(), "nem-é-jwt")
}

func TestCurrentTokenAdulterado(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, testUser(t, "senha123"))

	_, token, err := m.Login(ctx, "ana@exemplo.com", "senha123")
	require.NoError(t, err)

	outro := NewManager(&fakeUserFinder{}, kv.NewMemory(), "outro-segredo")
	_, err = outro.Current(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}
