package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PalcoPro/band-agenda/internal/access"
	"github.com/PalcoPro/band-agenda/internal/audit"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
	"github.com/PalcoPro/band-agenda/internal/storage"
	usecase "github.com/PalcoPro/band-agenda/internal/usecase/event"
)

// maxContractSize limita o upload de contrato (20 MB).
const maxContractSize = 20 << 20

// ContractHandler concentra tudo que o papel de contratos faz sobre um
// evento: anexar arquivo, marcar contrato recebido e gerar o link do
// formulário do contratante.
type ContractHandler struct {
	repo    domain.Repository
	storage storage.Uploader
	share   *usecase.ShareContractorForm
	audit   *audit.Dispatcher
}

func NewContractHandler(
	repo domain.Repository,
	storage storage.Uploader,
	share *usecase.ShareContractorForm,
	audit *audit.Dispatcher,
) *ContractHandler {
	return &ContractHandler{repo: repo, storage: storage, share: share, audit: audit}
}

func (h *ContractHandler) requireContracts(c *gin.Context) bool {
	if !access.CanEditContracts(currentUser(c)) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para editar contratos.")
		return false
	}
	return true
}

// Upload recebe o arquivo em multipart, grava no bucket e anexa ao
// evento. Anexar um contrato marca hasContract automaticamente.
func (h *ContractHandler) Upload(c *gin.Context) {
	if !h.requireContracts(c) {
		return
	}
	user := currentUser(c)
	ctx := c.Request.Context()

	ev, err := h.repo.GetEvent(ctx, c.Param("id"))
	if err != nil {
		httperr.Internal(c, "failed_to_load_event", "Erro ao carregar evento.")
		return
	}
	if ev == nil {
		httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo 'file'.")
		return
	}
	if fileHeader.Size > maxContractSize {
		httperr.BadRequest(c, "file_too_large", "O arquivo excede o limite de 20 MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo enviado.")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("contracts/%s/%s%s",
		ev.ID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	url, err := h.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_contract", "Erro ao enviar o contrato.")
		return
	}

	updated := sanitize.Event(*ev, "")
	updated.ContractFiles = append(updated.ContractFiles, models.ContractFile{
		Name:       fileHeader.Filename,
		URL:        url,
		UploadedAt: time.Now(),
	})
	received := true
	updated.HasContract = &received

	if err := h.repo.SaveEvent(ctx, &updated); err != nil {
		httperr.Internal(c, "failed_to_save_event", "Erro ao salvar evento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "contract_uploaded",
		Entity:   "event",
		EntityID: updated.ID,
		Metadata: fileHeader.Filename,
	})

	httpresp.OK(c, updated)
}

type SetContractRequest struct {
	HasContract *bool `json:"has_contract" binding:"required"`
}

// SetHasContract é o toggle manual, para contrato assinado fora do
// sistema. Não mexe nos arquivos já anexados.
func (h *ContractHandler) SetHasContract(c *gin.Context) {
	if !h.requireContracts(c) {
		return
	}
	user := currentUser(c)
	ctx := c.Request.Context()

	ev, err := h.repo.GetEvent(ctx, c.Param("id"))
	if err != nil {
		httperr.Internal(c, "failed_to_load_event", "Erro ao carregar evento.")
		return
	}
	if ev == nil {
		httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
		return
	}

	var req SetContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	updated := sanitize.Event(*ev, "")
	updated.HasContract = req.HasContract

	if err := h.repo.SaveEvent(ctx, &updated); err != nil {
		httperr.Internal(c, "failed_to_save_event", "Erro ao salvar evento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "contract_flag_changed",
		Entity:   "event",
		EntityID: updated.ID,
	})

	httpresp.OK(c, updated)
}

// ShareForm gera (ou regenera) o token do formulário público do
// contratante e devolve o token para o front montar o link.
func (h *ContractHandler) ShareForm(c *gin.Context) {
	if !h.requireContracts(c) {
		return
	}
	user := currentUser(c)

	token, err := h.share.Execute(c.Request.Context(), c.Param("id"), user.Email)
	if err != nil {
		if httperr.IsBusiness(err, "event_not_found") {
			httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_issue_form_token", "Erro ao gerar o link do formulário.")
		return
	}

	httpresp.OK(c, gin.H{"form_token": token})
}
