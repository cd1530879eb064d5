package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/academics/students/controller"
)

func StudentRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.StudentHandler{DB: db}

	students := r.Group("/students")
	students.Post("/", h.CreateStudent)
	students.Get("/", h.ListStudents)
	students.Get("/:id", h.GetStudent)
	students.Patch("/:id", h.UpdateStudent)
	students.Delete("/:id", h.DeleteStudent)
}
