package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/finance/billings/dto"
	service "schoolku_backend/internals/features/finance/billings/service"
	helper "schoolku_backend/internals/helpers"
)

type StudentBillHandler struct {
	Service *service.BillingService
}

// =======================================================
// GENERATE (one student, one year)
// POST /api/a/student-bills/generate
// =======================================================
func (h *StudentBillHandler) GenerateBills(c *fiber.Ctx) error {
	var in dto.GenerateBillsDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	bills, err := h.Service.GenerateBills(c.Context(), in.StudentID, in.AcademicYearID)
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "student is not enrolled for the academic year")
		}
		if helper.IsUniqueViolation(err) {
			// a concurrent generation won the race; nothing was corrupted
			return helper.JsonError(c, fiber.StatusConflict, "bill generation is already in progress for this student")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "bills generated", dto.ToStudentBillResponses(bills))
}

// =======================================================
// GENERATE (bulk, whole year)
// POST /api/a/student-bills/generate-bulk
// =======================================================
func (h *StudentBillHandler) GenerateBulk(c *fiber.Ctx) error {
	var in dto.GenerateBulkDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res, err := h.Service.GenerateBulk(c.Context(), in.AcademicYearID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "bulk generation finished", res)
}

// =======================================================
// MANUAL BILLING (explicit fee-structure id list)
// POST /api/a/student-bills/manual
// =======================================================
func (h *StudentBillHandler) CreateManualBills(c *fiber.Ctx) error {
	var in dto.CreateManualBillsDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	issued := time.Now()
	if in.IssuedDate != nil {
		issued = *in.IssuedDate
	}

	created, err := h.Service.CreateManualBills(c.Context(), in.StudentID, in.AcademicYearID, in.FeeStructureIDs, issued)
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "student is not enrolled for the academic year")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "manual bills created", fiber.Map{"created": created})
}

// =======================================================
// LIST (per student + year)
// GET /api/a/student-bills?student_id=&academic_year_id=
// =======================================================
func (h *StudentBillHandler) ListBills(c *fiber.Ctx) error {
	studentID, err := uuidQuery(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	yearID, err := uuidQuery(c, "academic_year_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid academic_year_id")
	}

	bills, err := h.Service.ListBills(c.Context(), studentID, yearID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "no bills found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "student bills", dto.ToStudentBillResponses(bills))
}
