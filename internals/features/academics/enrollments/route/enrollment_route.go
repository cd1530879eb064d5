package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/academics/enrollments/controller"
)

func EnrollmentRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.EnrollmentHandler{DB: db}

	enrollments := r.Group("/enrollments")
	enrollments.Post("/", h.CreateEnrollment)
	enrollments.Get("/", h.ListEnrollments)
	enrollments.Patch("/:id/status", h.UpdateEnrollmentStatus)
}
