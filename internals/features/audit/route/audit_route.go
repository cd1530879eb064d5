package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/audit/controller"
)

func AuditRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.AuditHandler{DB: db}
	r.Get("/audit-logs", h.ListAuditLogs)
}
