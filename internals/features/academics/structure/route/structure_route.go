package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/academics/structure/controller"
)

// StructureRoutes mounts academic-year, grade, section and subject
// management.
func StructureRoutes(r fiber.Router, db *gorm.DB) {
	yearHandler := &controller.AcademicYearHandler{DB: db}
	structHandler := &controller.StructureHandler{DB: db}

	years := r.Group("/academic-years")
	years.Post("/", yearHandler.CreateAcademicYear)
	years.Get("/", yearHandler.ListAcademicYears)
	years.Patch("/:id", yearHandler.UpdateAcademicYear)

	grades := r.Group("/grades")
	grades.Post("/", structHandler.CreateGrade)
	grades.Get("/", structHandler.ListGrades)

	sections := r.Group("/class-sections")
	sections.Post("/", structHandler.CreateClassSection)
	sections.Get("/", structHandler.ListClassSections)

	subjects := r.Group("/subjects")
	subjects.Post("/", structHandler.CreateSubject)
	subjects.Get("/", structHandler.ListSubjects)
}
