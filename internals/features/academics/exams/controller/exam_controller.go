package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/academics/exams/dto"
	model "schoolku_backend/internals/features/academics/exams/model"
	helper "schoolku_backend/internals/helpers"
)

type ExamHandler struct {
	DB *gorm.DB
}

// ====== CREATE
// POST /api/a/exams
func (h *ExamHandler) CreateExam(c *fiber.Ctx) error {
	var body dto.ExamCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	exam := body.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create exam")
	}
	return helper.JsonCreated(c, "Exam created", exam)
}

// ====== LIST
// GET /api/a/exams?academic_year_id=...
func (h *ExamHandler) ListExams(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.ExamModel{})
	if s := c.Query("academic_year_id"); s != "" {
		yearID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid academic_year_id")
		}
		q = q.Where("exam_academic_year_id = ?", yearID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count exams")
	}

	var exams []model.ExamModel
	if err := q.Order("exam_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list exams")
	}
	return helper.JsonList(c, "OK", exams, helper.BuildPagination(total, p, len(exams)))
}

// ====== UPDATE
// PATCH /api/a/exams/:id
func (h *ExamHandler) UpdateExam(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var body dto.ExamUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var exam model.ExamModel
	if err := h.DB.WithContext(c.Context()).
		First(&exam, "exam_id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load exam")
	}

	if body.Name != nil {
		exam.ExamName = *body.Name
	}
	if body.Term != nil {
		exam.ExamTerm = body.Term
	}
	if body.StartDate != nil {
		exam.ExamStartDate = body.StartDate
	}
	if body.EndDate != nil {
		exam.ExamEndDate = body.EndDate
	}

	if err := h.DB.WithContext(c.Context()).Save(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update exam")
	}
	return helper.JsonUpdated(c, "Exam updated", exam)
}

// ====== DELETE
// DELETE /api/a/exams/:id (soft)
func (h *ExamHandler) DeleteExam(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}
	res := h.DB.WithContext(c.Context()).
		Delete(&model.ExamModel{}, "exam_id = ?", examID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete exam")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
	}
	return helper.JsonDeleted(c, "Exam deleted", fiber.Map{"exam_id": examID})
}
