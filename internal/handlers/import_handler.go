package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PalcoPro/band-agenda/internal/access"
	"github.com/PalcoPro/band-agenda/internal/csvimport"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	usecase "github.com/PalcoPro/band-agenda/internal/usecase/event"
)

// maxImportSize limita o CSV de importação (5 MB).
const maxImportSize = 5 << 20

type ImportHandler struct {
	repo     domain.Repository
	importer *usecase.ImportEvents
}

func NewImportHandler(repo domain.Repository, imp *usecase.ImportEvents) *ImportHandler {
	return &ImportHandler{repo: repo, importer: imp}
}

// parse lê o CSV do multipart e roda a validação; escreve a resposta de
// erro e devolve ok=false quando a requisição não deve prosseguir.
func (h *ImportHandler) parse(c *gin.Context) ([]csvimport.ParsedRow, bool) {
	if !access.CanImportEvents(currentUser(c)) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para importar eventos.")
		return nil, false
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo CSV no campo 'file'.")
		return nil, false
	}
	if fileHeader.Size > maxImportSize {
		httperr.BadRequest(c, "file_too_large", "O arquivo excede o limite de 5 MB.")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo enviado.")
		return nil, false
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo enviado.")
		return nil, false
	}

	bands, err := h.repo.ListBands(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_bands", "Erro ao validar importação.")
		return nil, false
	}

	rows, err := csvimport.Validate(string(raw), bands)
	if err != nil {
		var headerErr *csvimport.HeaderError
		if errors.As(err, &headerErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "invalid_header",
				"message":         headerErr.Error(),
				"missing_columns": headerErr.Missing,
			})
			return nil, false
		}
		httperr.Internal(c, "failed_to_validate_import", "Erro ao validar importação.")
		return nil, false
	}

	return rows, true
}

// Validate é o dry-run: devolve o diagnóstico linha a linha sem gravar
// nada. O front usa isso como tela de conferência antes do commit.
func (h *ImportHandler) Validate(c *gin.Context) {
	rows, ok := h.parse(c)
	if !ok {
		return
	}

	valid := 0
	for _, row := range rows {
		if row.Valid() {
			valid++
		}
	}

	httpresp.OK(c, gin.H{
		"rows":       rows,
		"total":      len(rows),
		"valid_rows": valid,
		"error_rows": len(rows) - valid,
	})
}

// Commit revalida o arquivo e grava as linhas válidas; as linhas com
// erro são devolvidas para correção. Não há atomicidade entre linhas.
func (h *ImportHandler) Commit(c *gin.Context) {
	rows, ok := h.parse(c)
	if !ok {
		return
	}
	user := currentUser(c)

	committed := h.importer.Execute(c.Request.Context(), rows, user.Email)

	rejected := make([]csvimport.ParsedRow, 0)
	for _, row := range rows {
		if !row.Valid() {
			rejected = append(rejected, row)
		}
	}

	httpresp.OK(c, gin.H{
		"committed": committed,
		"rejected":  rejected,
		"total":     len(rows),
	})
}
