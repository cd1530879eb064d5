package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/academics/structure/dto"
	model "schoolku_backend/internals/features/academics/structure/model"
	helper "schoolku_backend/internals/helpers"
)

type AcademicYearHandler struct {
	DB *gorm.DB
}

// ====== CREATE
// POST /api/a/academic-years
// At most one year is active; activating this one deactivates the rest
// in the same transaction.
func (h *AcademicYearHandler) CreateAcademicYear(c *fiber.Ctx) error {
	var body dto.AcademicYearCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	year := model.AcademicYearModel{
		AcademicYearName:      body.Name,
		AcademicYearStartDate: body.StartDate,
		AcademicYearEndDate:   body.EndDate,
		AcademicYearIsActive:  body.IsActive,
	}

	err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if body.IsActive {
			if err := tx.Model(&model.AcademicYearModel{}).
				Where("academic_year_is_active = ?", true).
				Update("academic_year_is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&year).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Academic year name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create academic year")
	}
	return helper.JsonCreated(c, "Academic year created", year)
}

// ====== LIST
// GET /api/a/academic-years
func (h *AcademicYearHandler) ListAcademicYears(c *fiber.Ctx) error {
	var years []model.AcademicYearModel
	if err := h.DB.WithContext(c.Context()).
		Order("academic_year_start_date DESC").
		Find(&years).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list academic years")
	}
	return helper.JsonOK(c, "OK", years)
}

// ====== UPDATE
// PATCH /api/a/academic-years/:id
func (h *AcademicYearHandler) UpdateAcademicYear(c *fiber.Ctx) error {
	yearID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid academic year id")
	}

	var body dto.AcademicYearUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var year model.AcademicYearModel
	if err := h.DB.WithContext(c.Context()).
		First(&year, "academic_year_id = ?", yearID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Academic year not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load academic year")
	}

	if body.Name != nil {
		year.AcademicYearName = *body.Name
	}
	if body.StartDate != nil {
		year.AcademicYearStartDate = *body.StartDate
	}
	if body.EndDate != nil {
		year.AcademicYearEndDate = *body.EndDate
	}
	if body.IsActive != nil {
		year.AcademicYearIsActive = *body.IsActive
	}

	err = h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if body.IsActive != nil && *body.IsActive {
			if err := tx.Model(&model.AcademicYearModel{}).
				Where("academic_year_id <> ? AND academic_year_is_active = ?", yearID, true).
				Update("academic_year_is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&year).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Academic year name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update academic year")
	}
	return helper.JsonUpdated(c, "Academic year updated", year)
}
