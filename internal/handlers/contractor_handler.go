package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
	"github.com/PalcoPro/band-agenda/internal/validators"
)

type ContractorHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewContractorHandler(db *gorm.DB, audit *audit.Dispatcher) *ContractorHandler {
	return &ContractorHandler{db: db, audit: audit}
}

type ContractorRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`

	ResponsibleName    string `json:"responsible_name"`
	ResponsibleContact string `json:"responsible_contact"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`

	CPF       string `json:"cpf"`
	RG        string `json:"rg"`
	BirthDate string `json:"birth_date"`
	CNPJ      string `json:"cnpj"`

	Address        models.ContractorAddress        `json:"address"`
	AdditionalInfo models.ContractorAdditionalInfo `json:"additional_info"`
}

// validateDocuments checa só o documento pertinente ao tipo; campo
// vazio não reprova (cadastro incremental é comum vindo de prospecção).
func (r ContractorRequest) validateDocuments(c *gin.Context) bool {
	if r.CPF != "" && !validators.IsValidCPF(r.CPF) {
		httperr.BadRequest(c, "invalid_cpf", "CPF inválido.")
		return false
	}
	if r.CNPJ != "" && !validators.IsValidCNPJ(r.CNPJ) {
		httperr.BadRequest(c, "invalid_cnpj", "CNPJ inválido.")
		return false
	}
	return true
}

func (h *ContractorHandler) List(c *gin.Context) {
	var contractors []models.Contractor
	if err := h.db.Order("name ASC").Find(&contractors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_contractors", "Erro ao listar contratantes.")
		return
	}
	httpresp.List(c, contractors)
}

func (h *ContractorHandler) Get(c *gin.Context) {
	var contractor models.Contractor
	err := h.db.First(&contractor, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "contractor_not_found", "Contratante não encontrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_contractor", "Erro ao carregar contratante.")
		return
	}
	httpresp.OK(c, contractor)
}

func (h *ContractorHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req ContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !req.validateDocuments(c) {
		return
	}

	contractor := sanitize.Contractor(models.Contractor{
		Name:               req.Name,
		Type:               req.Type,
		ResponsibleName:    req.ResponsibleName,
		ResponsibleContact: req.ResponsibleContact,
		Email:              req.Email,
		Phone:              req.Phone,
		CPF:                req.CPF,
		RG:                 req.RG,
		BirthDate:          req.BirthDate,
		CNPJ:               req.CNPJ,
		Address:            datatypes.NewJSONType(req.Address),
		AdditionalInfo:     datatypes.NewJSONType(req.AdditionalInfo),
	}, uuid.NewString())

	if err := h.db.Create(&contractor).Error; err != nil {
		httperr.Internal(c, "failed_to_create_contractor", "Erro ao criar contratante.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "contractor_created",
		Entity:   "contractor",
		EntityID: contractor.ID,
	})

	httpresp.Created(c, contractor)
}

func (h *ContractorHandler) Update(c *gin.Context) {
	user := currentUser(c)

	var contractor models.Contractor
	err := h.db.First(&contractor, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "contractor_not_found", "Contratante não encontrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_load_contractor", "Erro ao carregar contratante.")
		return
	}

	var req ContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !req.validateDocuments(c) {
		return
	}

	contractor.Name = req.Name
	contractor.Type = req.Type
	contractor.ResponsibleName = req.ResponsibleName
	contractor.ResponsibleContact = req.ResponsibleContact
	contractor.Email = req.Email
	contractor.Phone = req.Phone
	contractor.CPF = req.CPF
	contractor.RG = req.RG
	contractor.BirthDate = req.BirthDate
	contractor.CNPJ = req.CNPJ
	contractor.Address = datatypes.NewJSONType(req.Address)
	contractor.AdditionalInfo = datatypes.NewJSONType(req.AdditionalInfo)
	contractor = sanitize.Contractor(contractor, "")

	if err := h.db.Save(&contractor).Error; err != nil {
		httperr.Internal(c, "failed_to_update_contractor", "Erro ao atualizar contratante.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "contractor_updated",
		Entity:   "contractor",
		EntityID: contractor.ID,
	})

	httpresp.OK(c, contractor)
}
