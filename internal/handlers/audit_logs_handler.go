package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PalcoPro/band-agenda/internal/access"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	"github.com/PalcoPro/band-agenda/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List devolve a trilha de auditoria paginada, mais recente primeiro.
// Filtros opcionais: actor, action, entity e entity_id.
func (h *AuditLogsHandler) List(c *gin.Context) {
	if !access.CanManageUsers(currentUser(c)) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para ver a auditoria.")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	query := h.db.Model(&models.AuditLog{})
	if actor := c.Query("actor"); actor != "" {
		query = query.Where("actor = ?", actor)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if entityID := c.Query("entity_id"); entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}

	var total int64
	query.Count(&total)

	var logs []models.AuditLog
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Erro ao listar auditoria.")
		return
	}

	httpresp.OK(c, gin.H{
		"data":   logs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
