package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/academics/enrollments/dto"
	model "schoolku_backend/internals/features/academics/enrollments/model"
	helper "schoolku_backend/internals/helpers"
)

type EnrollmentHandler struct {
	DB *gorm.DB
}

// ====== CREATE
// POST /api/a/enrollments
// One enrollment per (student, academic year); re-enrolling the same
// student in the same year is a conflict, not an update.
func (h *EnrollmentHandler) CreateEnrollment(c *fiber.Ctx) error {
	var body dto.EnrollmentCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	enrollment := model.EnrollmentModel{
		EnrollmentStudentID:      body.StudentID,
		EnrollmentAcademicYearID: body.AcademicYearID,
		EnrollmentSectionID:      body.SectionID,
		EnrollmentStatus:         model.EnrollmentStatusActive,
	}
	if body.JoinedAt != nil {
		enrollment.EnrollmentJoinedAt = *body.JoinedAt
	}

	if err := h.DB.WithContext(c.Context()).Create(&enrollment).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Student is already enrolled for this academic year")
		}
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unknown student, academic year or section")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create enrollment")
	}
	return helper.JsonCreated(c, "Enrollment created", enrollment)
}

// ====== LIST
// GET /api/a/enrollments?academic_year_id=...&section_id=...&status=...
func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.EnrollmentModel{})
	if s := c.Query("academic_year_id"); s != "" {
		yearID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid academic_year_id")
		}
		q = q.Where("enrollment_academic_year_id = ?", yearID)
	}
	if s := c.Query("section_id"); s != "" {
		sectionID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section_id")
		}
		q = q.Where("enrollment_section_id = ?", sectionID)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("enrollment_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count enrollments")
	}

	var enrollments []model.EnrollmentModel
	if err := q.Order("enrollment_joined_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list enrollments")
	}
	return helper.JsonList(c, "OK", enrollments, helper.BuildPagination(total, p, len(enrollments)))
}

// ====== STATUS
// PATCH /api/a/enrollments/:id/status
func (h *EnrollmentHandler) UpdateEnrollmentStatus(c *fiber.Ctx) error {
	enrollmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment id")
	}

	var body dto.EnrollmentStatusDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	status := model.EnrollmentStatus(body.Status)
	if status == model.EnrollmentStatusTransferred && body.SectionID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Transfer requires a section_id")
	}

	var enrollment model.EnrollmentModel
	if err := h.DB.WithContext(c.Context()).
		First(&enrollment, "enrollment_id = ?", enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load enrollment")
	}

	enrollment.EnrollmentStatus = status
	if body.SectionID != nil {
		enrollment.EnrollmentSectionID = *body.SectionID
	}
	if status == model.EnrollmentStatusLeft {
		at := time.Now()
		if body.LeftAt != nil {
			at = *body.LeftAt
		}
		enrollment.EnrollmentLeftAt = &at
	} else {
		enrollment.EnrollmentLeftAt = nil
	}

	if err := h.DB.WithContext(c.Context()).Save(&enrollment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update enrollment")
	}
	return helper.JsonUpdated(c, "Enrollment updated", enrollment)
}
