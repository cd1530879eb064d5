package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolku_backend/internals/features/audit/model"
	helper "schoolku_backend/internals/helpers"
)

type AuditHandler struct {
	DB *gorm.DB
}

// ====== LIST
// GET /api/a/audit-logs?module=...&entity=...&actor_id=...
func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.AuditLogModel{})
	if s := c.Query("module"); s != "" {
		q = q.Where("audit_log_module = ?", s)
	}
	if s := c.Query("entity"); s != "" {
		q = q.Where("audit_log_entity_name = ?", s)
	}
	if s := c.Query("actor_id"); s != "" {
		actorID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid actor_id")
		}
		q = q.Where("audit_log_actor_id = ?", actorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count audit logs")
	}

	var logs []model.AuditLogModel
	if err := q.Order("audit_log_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list audit logs")
	}
	return helper.JsonList(c, "OK", logs, helper.BuildPagination(total, p, len(logs)))
}
