package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PalcoPro/band-agenda/internal/access"
	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	"github.com/PalcoPro/band-agenda/internal/tokens"
)

type ProspectingHandler struct {
	tokens *tokens.Manager
	audit  *audit.Dispatcher
}

func NewProspectingHandler(tokens *tokens.Manager, audit *audit.Dispatcher) *ProspectingHandler {
	return &ProspectingHandler{tokens: tokens, audit: audit}
}

// IssueToken gera um link de prospecção para o time comercial
// compartilhar. O token vale até a primeira submissão bem-sucedida.
func (h *ProspectingHandler) IssueToken(c *gin.Context) {
	user := currentUser(c)
	if !access.CanIssueProspectingLinks(user) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para gerar links de prospecção.")
		return
	}

	token, err := h.tokens.IssueProspectingToken(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_issue_token", "Erro ao gerar link de prospecção.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:  user.Email,
		Action: "prospect_token_issued",
		Entity: "prospect_token",
	})

	httpresp.Created(c, gin.H{"prospect_token": token})
}
