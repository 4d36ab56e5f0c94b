package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/PalcoPro/band-agenda/internal/access"
	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
	"github.com/PalcoPro/band-agenda/internal/validators"
)

// Tela administrativa de usuários: só ADMIN chega aqui.
type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: audit}
}

type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     string   `json:"role"`
	BandIDs  []string `json:"band_ids"`
}

type UpdateUserRequest struct {
	Name    string   `json:"name"`
	Role    string   `json:"role"`
	Status  string   `json:"status"`
	BandIDs []string `json:"band_ids"`
}

func (h *UserHandler) requireAdmin(c *gin.Context) bool {
	if !access.CanManageUsers(currentUser(c)) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para gerenciar usuários.")
		return false
	}
	return true
}

func (h *UserHandler) List(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var users []models.User
	if err := h.db.Order("created_at ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}

	for i := range users {
		users[i] = sanitize.User(users[i], "")
	}

	httpresp.List(c, users)
}

// Create é o cadastro feito pelo admin: a conta já nasce ACTIVE, ao
// contrário do autocadastro público.
func (h *UserHandler) Create(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	actor := currentUser(c)

	var req CreateUserRequest
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
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar usuário.")
		return
	}

	user := sanitize.User(models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Status:       models.UserStatusActive,
		BandIDs:      datatypes.NewJSONSlice(req.BandIDs),
	}, uuid.NewString())

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    actor.Email,
		Action:   "user_created",
		Entity:   "user",
		EntityID: user.ID,
	})

	httpresp.Created(c, user)
}

// Update cobre papel, status (inclusive aprovar um PENDING) e o vínculo
// de bandas. Senha não é editável por aqui.
func (h *UserHandler) Update(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	actor := currentUser(c)

	var user models.User
	err := h.db.First(&user, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_user", "Erro ao carregar usuário.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.BandIDs != nil {
		user.BandIDs = datatypes.NewJSONSlice(req.BandIDs)
	}
	user = sanitize.User(user, "")

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    actor.Email,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: user.ID,
	})

	httpresp.OK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	actor := currentUser(c)

	if c.Param("id") == actor.ID {
		httperr.BadRequest(c, "cannot_delete_self", "Você não pode excluir o próprio usuário.")
		return
	}

	result := h.db.Delete(&models.User{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_user", "Erro ao excluir usuário.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    actor.Email,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: c.Param("id"),
	})

	c.Status(http.StatusNoContent)
}
