package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/academics/exams/controller"
	service "schoolku_backend/internals/features/academics/exams/service"
	auditsvc "schoolku_backend/internals/features/audit/service"
)

// ExamAdminRoutes mounts exam and result management.
func ExamAdminRoutes(r fiber.Router, db *gorm.DB) {
	examHandler := &controller.ExamHandler{DB: db}
	resultHandler := &controller.ExamResultHandler{DB: db}

	exams := r.Group("/exams")
	exams.Post("/", examHandler.CreateExam)
	exams.Get("/", examHandler.ListExams)
	exams.Patch("/:id", examHandler.UpdateExam)
	exams.Delete("/:id", examHandler.DeleteExam)

	results := r.Group("/exam-results")
	results.Post("/bulk", resultHandler.BulkUpsertResults)
	results.Get("/", resultHandler.ListResults)
	results.Delete("/:id", resultHandler.DeleteResult)
}

// ExamPublishRoutes mounts the publication gate. Publishing is its own
// capability, separate from result entry.
func ExamPublishRoutes(r fiber.Router, db *gorm.DB) {
	publishHandler := &controller.PublishHandler{
		Service: service.NewPublishService(db, auditsvc.NewLogger(db)),
		Results: service.NewResultService(db),
	}

	exams := r.Group("/exams")
	exams.Post("/:id/publish", publishHandler.Publish)
	exams.Get("/:id/publish/preview", publishHandler.Preview)
	exams.Get("/:id/publications", publishHandler.ListPublications)
}

// ExamUserRoutes mounts the student-facing published-results view.
func ExamUserRoutes(r fiber.Router, db *gorm.DB) {
	publishHandler := &controller.PublishHandler{
		Service: service.NewPublishService(db, auditsvc.NewLogger(db)),
		Results: service.NewResultService(db),
	}
	r.Get("/results", publishHandler.MyResults)
}
