package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PalcoPro/band-agenda/internal/middleware"
	"github.com/PalcoPro/band-agenda/internal/models"
)

// currentUser recupera o snapshot do usuário gravado pelo middleware
// de autenticação. Snapshot vazio (papel "") falha fechado em todas as
// checagens de acesso.
func currentUser(c *gin.Context) models.User {
	v, ok := c.Get(middleware.ContextUser)
	if !ok {
		return models.User{}
	}
	u, ok := v.(models.User)
	if !ok {
		return models.User{}
	}
	return u
}
