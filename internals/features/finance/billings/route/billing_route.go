package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/finance/billings/controller"
	service "schoolku_backend/internals/features/finance/billings/service"
)

// BillingRoutes mounts fee-structure and student-bill endpoints on the
// admin group. Capability middleware is applied by the caller.
func BillingRoutes(r fiber.Router, db *gorm.DB) {
	fsHandler := &controller.FeeStructureHandler{DB: db}
	billHandler := &controller.StudentBillHandler{Service: service.NewBillingService(db)}

	fs := r.Group("/fee-structures")
	fs.Post("/", fsHandler.CreateFeeStructure)
	fs.Get("/", fsHandler.ListFeeStructures)
	fs.Patch("/:id", fsHandler.UpdateFeeStructure)
	fs.Delete("/:id", fsHandler.DeleteFeeStructure)

	bills := r.Group("/student-bills")
	bills.Post("/generate", billHandler.GenerateBills)
	bills.Post("/generate-bulk", billHandler.GenerateBulk)
	bills.Post("/manual", billHandler.CreateManualBills)
	bills.Get("/", billHandler.ListBills)
}
