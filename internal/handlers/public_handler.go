package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	"github.com/PalcoPro/band-agenda/internal/models"
	usecase "github.com/PalcoPro/band-agenda/internal/usecase/event"
)

// Mensagem única para qualquer token inválido, expirado ou já usado: o
// visitante anônimo não recebe diagnóstico.
const deadEndMessage = "Link inválido ou já utilizado."

// PublicHandler atende as rotas sem autenticação: o formulário do
// contratante e a prospecção por link.
type PublicHandler struct {
	resolveForm  *usecase.ResolveContractorForm
	completeForm *usecase.CompleteContractorForm
	prospect     *usecase.CreateProspect
}

func NewPublicHandler(
	resolveForm *usecase.ResolveContractorForm,
	completeForm *usecase.CompleteContractorForm,
	prospect *usecase.CreateProspect,
) *PublicHandler {
	return &PublicHandler{
		resolveForm:  resolveForm,
		completeForm: completeForm,
		prospect:     prospect,
	}
}

// --------- Formulário do contratante ---------

// GetContractorForm abre o formulário: devolve o contexto do evento
// para o front pré-preencher os campos.
func (h *PublicHandler) GetContractorForm(c *gin.Context) {
	formCtx, err := h.resolveForm.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		writePublicError(c, err)
		return
	}

	var bandName string
	if formCtx.Band != nil {
		bandName = formCtx.Band.Name
	}

	httpresp.OK(c, gin.H{
		"event": gin.H{
			"name":      formCtx.Event.Name,
			"date":      formCtx.Event.Date,
			"time":      formCtx.Event.Time,
			"city":      formCtx.Event.City,
			"venue":     formCtx.Event.Venue,
			"band_name": bandName,
		},
		"contractor": formCtx.Contractor,
	})
}

type ContractorFormRequest struct {
	Name string `json:"name"`
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

func (h *PublicHandler) SubmitContractorForm(c *gin.Context) {
	var req ContractorFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	_, err := h.completeForm.Execute(c.Request.Context(), usecase.CompleteFormInput{
		Token:              c.Param("token"),
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
		Address:            req.Address,
		AdditionalInfo:     req.AdditionalInfo,
	})
	if err != nil {
		writePublicError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Dados recebidos. Obrigado!",
	})
}

// --------- Prospecção ---------

type ProspectRequest struct {
	ContractorName string `json:"contractor_name" binding:"required"`
	ContractorType string `json:"contractor_type"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`

	EventName string `json:"event_name"`
	Date      string `json:"date"` // AAAA-MM-DD, opcional
	City      string `json:"city"`
	Venue     string `json:"venue"`

	AdditionalInfo models.ContractorAdditionalInfo `json:"additional_info"`
}

func (h *PublicHandler) SubmitProspect(c *gin.Context) {
	var req ProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida, use o formato AAAA-MM-DD.")
			return
		}
		date = parsed
	}

	_, err := h.prospect.Execute(c.Request.Context(), usecase.CreateProspectInput{
		Token:          c.Param("token"),
		ContractorName: req.ContractorName,
		ContractorType: req.ContractorType,
		Email:          req.Email,
		Phone:          req.Phone,
		AdditionalInfo: req.AdditionalInfo,
		EventName:      req.EventName,
		Date:           date,
		City:           req.City,
		Venue:          req.Venue,
	})
	if err != nil {
		writePublicError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Recebemos seu interesse. Entraremos em contato em breve!",
	})
}

// --------- Helpers ---------

func writePublicError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_token"):
		httperr.NotFound(c, "invalid_token", deadEndMessage)
	case httperr.IsBusiness(err, "contractor_name_required"):
		httperr.BadRequest(c, "contractor_name_required", "Informe o seu nome.")
	default:
		httperr.Internal(c, "public_form_error", "Erro ao processar a solicitação.")
	}
}
