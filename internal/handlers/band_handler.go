package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PalcoPro/band-agenda/internal/access"
	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
	"github.com/PalcoPro/band-agenda/internal/validators"
)

// CRUD simples direto no gorm; o elenco não tem regra de negócio além
// da sanitização e do gate administrativo.
type BandHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBandHandler(db *gorm.DB, audit *audit.Dispatcher) *BandHandler {
	return &BandHandler{db: db, audit: audit}
}

type BandRequest struct {
	Name    string             `json:"name" binding:"required"`
	Genre   string             `json:"genre"`
	Members int                `json:"members"`
	Company models.BandCompany `json:"company"`
}

func (h *BandHandler) List(c *gin.Context) {
	user := currentUser(c)

	var bands []models.Band
	if err := h.db.Order("name ASC").Find(&bands).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bands", "Erro ao listar bandas.")
		return
	}

	httpresp.List(c, access.FilterBands(bands, user))
}

func (h *BandHandler) Get(c *gin.Context) {
	user := currentUser(c)

	var band models.Band
	err := h.db.First(&band, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "band_not_found", "Banda não encontrada.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_band", "Erro ao carregar banda.")
		return
	}

	if len(access.FilterBands([]models.Band{band}, user)) == 0 {
		httperr.NotFound(c, "band_not_found", "Banda não encontrada.")
		return
	}

	httpresp.OK(c, band)
}

func (h *BandHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if !access.CanManageBands(user) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para gerenciar bandas.")
		return
	}

	var req BandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Company.CNPJ != "" && !validators.IsValidCNPJ(req.Company.CNPJ) {
		httperr.BadRequest(c, "invalid_cnpj", "CNPJ da empresa inválido.")
		return
	}

	band := sanitize.Band(models.Band{
		Name:    req.Name,
		Genre:   req.Genre,
		Members: req.Members,
		Company: req.Company,
	}, uuid.NewString())

	if err := h.db.Create(&band).Error; err != nil {
		httperr.Internal(c, "failed_to_create_band", "Erro ao criar banda.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "band_created",
		Entity:   "band",
		EntityID: band.ID,
	})

	httpresp.Created(c, band)
}

func (h *BandHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if !access.CanManageBands(user) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para gerenciar bandas.")
		return
	}

	var band models.Band
	err := h.db.First(&band, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "band_not_found", "Banda não encontrada.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_band", "Erro ao carregar banda.")
		return
	}

	var req BandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Company.CNPJ != "" && !validators.IsValidCNPJ(req.Company.CNPJ) {
		httperr.BadRequest(c, "invalid_cnpj", "CNPJ da empresa inválido.")
		return
	}

	band.Name = req.Name
	band.Genre = req.Genre
	band.Members = req.Members
	band.Company = req.Company
	band = sanitize.Band(band, "")

	if err := h.db.Save(&band).Error; err != nil {
		httperr.Internal(c, "failed_to_update_band", "Erro ao atualizar banda.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "band_updated",
		Entity:   "band",
		EntityID: band.ID,
	})

	httpresp.OK(c, band)
}

// Delete remove a banda sem tocar nos eventos: eventos com bandId
// pendurado continuam existindo e só aparecem para ADMIN/MANAGER.
func (h *BandHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if !access.CanManageBands(user) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para gerenciar bandas.")
		return
	}

	result := h.db.Delete(&models.Band{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_band", "Erro ao excluir banda.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "band_not_found", "Banda não encontrada.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "band_deleted",
		Entity:   "band",
		EntityID: c.Param("id"),
	})

	c.Status(http.StatusNoContent)
}
