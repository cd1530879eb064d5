package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/academics/structure/dto"
	model "schoolku_backend/internals/features/academics/structure/model"
	helper "schoolku_backend/internals/helpers"
)

// StructureHandler covers grades, class sections and subjects. These are
// small reference tables; the handlers stay thin.
type StructureHandler struct {
	DB *gorm.DB
}

// ====== GRADES
// POST /api/a/grades
func (h *StructureHandler) CreateGrade(c *fiber.Ctx) error {
	var body dto.GradeCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	grade := model.GradeModel{GradeName: body.Name, GradeLevel: body.Level}
	if err := h.DB.WithContext(c.Context()).Create(&grade).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Grade already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create grade")
	}
	return helper.JsonCreated(c, "Grade created", grade)
}

// GET /api/a/grades
func (h *StructureHandler) ListGrades(c *fiber.Ctx) error {
	var grades []model.GradeModel
	if err := h.DB.WithContext(c.Context()).
		Order("grade_level ASC").
		Find(&grades).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list grades")
	}
	return helper.JsonOK(c, "OK", grades)
}

// ====== CLASS SECTIONS
// POST /api/a/class-sections
func (h *StructureHandler) CreateClassSection(c *fiber.Ctx) error {
	var body dto.ClassSectionCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	section := model.ClassSectionModel{
		ClassSectionGradeID:  body.GradeID,
		ClassSectionName:     body.Name,
		ClassSectionCapacity: body.Capacity,
	}
	if err := h.DB.WithContext(c.Context()).Create(&section).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Section name already exists in this grade")
		}
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unknown grade")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create class section")
	}
	return helper.JsonCreated(c, "Class section created", section)
}

// GET /api/a/class-sections?grade_id=...
func (h *StructureHandler) ListClassSections(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.Context()).Model(&model.ClassSectionModel{})
	if s := c.Query("grade_id"); s != "" {
		gradeID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade_id")
		}
		q = q.Where("class_section_grade_id = ?", gradeID)
	}

	var sections []model.ClassSectionModel
	if err := q.Order("class_section_name ASC").Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list class sections")
	}
	return helper.JsonOK(c, "OK", sections)
}

// ====== SUBJECTS
// POST /api/a/subjects
func (h *StructureHandler) CreateSubject(c *fiber.Ctx) error {
	var body dto.SubjectCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	subject := model.SubjectModel{SubjectName: body.Name, SubjectCode: body.Code}
	if err := h.DB.WithContext(c.Context()).Create(&subject).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Subject code already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create subject")
	}
	return helper.JsonCreated(c, "Subject created", subject)
}

// GET /api/a/subjects
func (h *StructureHandler) ListSubjects(c *fiber.Ctx) error {
	var subjects []model.SubjectModel
	if err := h.DB.WithContext(c.Context()).
		Order("subject_name ASC").
		Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list subjects")
	}
	return helper.JsonOK(c, "OK", subjects)
}
