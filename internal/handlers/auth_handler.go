package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/middleware"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
	"github.com/PalcoPro/band-agenda/internal/session"
	"github.com/PalcoPro/band-agenda/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *session.Manager
	audit    *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, sessions *session.Manager, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register é o autocadastro público: a conta nasce PENDING e só
// autentica depois que um admin aprovar.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain",
			"O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered",
			"Já existe cadastro com este e-mail.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.Password)), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar cadastro.")
		return
	}

	user := sanitize.User(models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleMember,
		Status:       models.UserStatusPending,
	}, uuid.NewString())

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar cadastro.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"status":  "pending",
		"message": "Cadastro recebido. Aguarde a aprovação de um administrador.",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	user, token, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Mensagem genérica de propósito; a única distinção permitida
		// é o cadastro pendente.
		if errors.Is(err, session.ErrPendingApproval) {
			httperr.Unauthorized(c, "pending_approval",
				"Cadastro aguardando aprovação de um administrador.")
			return
		}
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "user_login",
		Entity:   "user",
		EntityID: user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"band_ids": user.BandIDs,
		},
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := c.Get(middleware.ContextToken); ok {
		if s, ok := token.(string); ok {
			h.sessions.Logout(c.Request.Context(), s)
		}
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Erro ao carregar usuário.")
		return
	}

	user = sanitize.User(user, "")
	c.JSON(http.StatusOK, gin.H{"user": user})
}
