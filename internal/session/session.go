// Package session emite e valida a credencial de sessão: um JWT HS256
// com snapshot do usuário e validade fixa de 24h, mais um registro no
// armazenamento chave-valor para que o logout invalide no servidor.
// A expiração é checada preguiçosamente a cada leitura; não existe
// varredura em background.
package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/PalcoPro/band-agenda/internal/kv"
	"github.com/PalcoPro/band-agenda/internal/models"
)

const TTL = 24 * time.Hour

const keyPrefix = "session:"

var (
	// ErrInvalidCredentials é deliberadamente genérico: não distingue
	// senha errada de usuário inexistente.
	ErrInvalidCredentials = errors.New("credenciais inválidas")

	// ErrPendingApproval é a única distinção permitida, para o usuário
	// saber que deve aguardar aprovação.
	ErrPendingApproval = errors.New("cadastro aguardando aprovação")

	ErrNoSession = errors.New("sessão ausente ou expirada")
)

type UserFinder interface {
	// FindByEmail devolve (nil, nil) quando não há usuário com o e-mail.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Claims carrega o snapshot do usuário dentro do token.
type Claims struct {
	jwt.RegisteredClaims
	Name    string   `json:"name"`
	Role    string   `json:"role"`
	BandIDs []string `json:"band_ids"`
}

// UserSnapshot reconstrói o usuário como era no momento do login.
func (c *Claims) UserSnapshot() models.User {
	return models.User{
		ID:      c.Subject,
		Name:    c.Name,
		Role:    c.Role,
		BandIDs: c.BandIDs,
	}
}

type Manager struct {
	users  UserFinder
	store  kv.Store
	secret []byte
	now    func() time.Time
}

func NewManager(users UserFinder, store kv.Store, secret string) *Manager {
	return &Manager{
		users:  users,
		store:  store,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Login normaliza o identificador (trim + minúsculas), compara a senha
// com bcrypt e só aceita usuário ACTIVE. Devolve o usuário e o token.
func (m *Manager) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(identifier))
	password = strings.TrimSpace(password)

	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	switch user.Status {
	case models.UserStatusActive:
		// ok
	case models.UserStatusPending:
		return nil, "", ErrPendingApproval
	default:
		return nil, "", ErrInvalidCredentials
	}

	token, jti, err := m.issue(user)
	if err != nil {
		return nil, "", err
	}

	if err := m.store.Set(ctx, keyPrefix+jti, user.ID, TTL); err != nil {
		// Sem registro não há logout de servidor, mas o login continua
		// válido pelo próprio token.
		log.Printf("session: falha ao registrar sessão: %v", err)
	}

	return user, token, nil
}

func (m *Manager) issue(user *models.User) (string, string, error) {
	now := m.now()
	jti := uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
		Name:    user.Name,
		Role:    user.Role,
		BandIDs: []string(user.BandIDs),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(m.secret)
	return token, jti, err
}

// Current valida o token em toda leitura. Sessão expirada ou removida
// pelo logout lê como ausente; a entrada vencida no registro é apagada
// na mesma passada.
func (m *Manager) Current(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		m.keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		if claims.ID != "" {
			_ = m.store.Del(ctx, keyPrefix+claims.ID)
		}
		return nil, ErrNoSession
	}

	_, found, err := m.store.Get(ctx, keyPrefix+claims.ID)
	if err != nil {
		// Registro indisponível: o token assinado e dentro da validade
		// continua valendo; só o logout de servidor fica degradado.
		log.Printf("session: registro de sessões indisponível: %v", err)
		return claims, nil
	}
	if !found {
		return nil, ErrNoSession
	}

	return claims, nil
}

// Logout apaga o registro incondicionalmente; token inválido é ignorado.
func (m *Manager) Logout(ctx context.Context, tokenString string) {
	claims := &Claims{}
	_, _ = jwt.ParseWithClaims(
		tokenString,
		claims,
		m.keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if claims.ID != "" {
		_ = m.store.Del(ctx, keyPrefix+claims.ID)
	}
}

func (m *Manager) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrTokenMalformed
	}
	return m.secret, nil
}
