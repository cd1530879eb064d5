package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/academics/students/dto"
	model "schoolku_backend/internals/features/academics/students/model"
	helper "schoolku_backend/internals/helpers"
)

type StudentHandler struct {
	DB *gorm.DB
}

// ====== CREATE
// POST /api/a/students
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var body dto.StudentCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	student := model.StudentModel{
		StudentUserID:        body.UserID,
		StudentNumber:        body.Number,
		StudentFullName:      body.FullName,
		StudentGender:        body.Gender,
		StudentBirthDate:     body.BirthDate,
		StudentGuardianName:  body.GuardianName,
		StudentGuardianPhone: body.GuardianPhone,
	}
	if err := h.DB.WithContext(c.Context()).Create(&student).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Student number already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}
	return helper.JsonCreated(c, "Student created", student)
}

// ====== LIST
// GET /api/a/students?search=...
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.StudentModel{})
	if s := c.Query("search"); s != "" {
		like := "%" + s + "%"
		q = q.Where("student_full_name ILIKE ? OR student_number ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var students []model.StudentModel
	if err := q.Order("student_number ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list students")
	}
	return helper.JsonList(c, "OK", students, helper.BuildPagination(total, p, len(students)))
}

// ====== DETAIL
// GET /api/a/students/:id
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	var student model.StudentModel
	if err := h.DB.WithContext(c.Context()).
		First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}
	return helper.JsonOK(c, "OK", student)
}

// ====== UPDATE
// PATCH /api/a/students/:id
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var body dto.StudentUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var student model.StudentModel
	if err := h.DB.WithContext(c.Context()).
		First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	if body.UserID != nil {
		student.StudentUserID = body.UserID
	}
	if body.FullName != nil {
		student.StudentFullName = *body.FullName
	}
	if body.Gender != nil {
		student.StudentGender = body.Gender
	}
	if body.BirthDate != nil {
		student.StudentBirthDate = body.BirthDate
	}
	if body.GuardianName != nil {
		student.StudentGuardianName = body.GuardianName
	}
	if body.GuardianPhone != nil {
		student.StudentGuardianPhone = body.GuardianPhone
	}

	if err := h.DB.WithContext(c.Context()).Save(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	return helper.JsonUpdated(c, "Student updated", student)
}

// ====== DELETE
// DELETE /api/a/students/:id (soft)
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	res := h.DB.WithContext(c.Context()).
		Delete(&model.StudentModel{}, "student_id = ?", studentID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"student_id": studentID})
}
