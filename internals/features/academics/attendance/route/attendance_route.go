package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/academics/attendance/controller"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.AttendanceHandler{DB: db}

	attendance := r.Group("/attendance")
	attendance.Post("/bulk", h.BulkMark)
	attendance.Get("/", h.ListBySectionDate)
	attendance.Get("/summary", h.Summary)
}
