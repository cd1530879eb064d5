package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/finance/billings/dto"
	model "schoolku_backend/internals/features/finance/billings/model"
	helper "schoolku_backend/internals/helpers"
)

type FeeStructureHandler struct {
	DB *gorm.DB
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// =======================================================
// CREATE
// POST /api/a/fee-structures
// =======================================================
func (h *FeeStructureHandler) CreateFeeStructure(c *fiber.Ctx) error {
	var in dto.FeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := dto.FeeStructureCreateDTOToModel(in)
	if err := h.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee structure already exists for this year, grade and category")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee structure created", dto.ToFeeStructureResponse(m))
}

// =======================================================
// LIST (filter by year and/or grade)
// GET /api/a/fee-structures?academic_year_id=&grade_id=
// =======================================================
func (h *FeeStructureHandler) ListFeeStructures(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.Context()).Model(&model.FeeStructureModel{})

	if s := c.Query("academic_year_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid academic_year_id")
		}
		q = q.Where("fee_structure_academic_year_id = ?", id)
	}
	if s := c.Query("grade_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid grade_id")
		}
		q = q.Where("fee_structure_grade_id = ?", id)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.FeeStructureModel
	if err := q.Order("fee_structure_category ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.FeeStructureResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToFeeStructureResponse(r))
	}
	return helper.JsonList(c, "fee structures", out, helper.BuildPagination(total, paging, len(out)))
}

// =======================================================
// UPDATE (partial)
// PATCH /api/a/fee-structures/:id
// =======================================================
func (h *FeeStructureHandler) UpdateFeeStructure(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.FeeStructureUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.FeeStructureModel
	if err := h.DB.WithContext(c.Context()).First(&m, "fee_structure_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee structure not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if in.FeeStructureAmount != nil {
		m.FeeStructureAmount = *in.FeeStructureAmount
	}
	if in.FeeStructureDueDate != nil {
		m.FeeStructureDueDate = in.FeeStructureDueDate
	}

	if err := h.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "fee structure updated", dto.ToFeeStructureResponse(m))
}

// =======================================================
// DELETE (soft; bills keep their own copy of the amount)
// DELETE /api/a/fee-structures/:id
// =======================================================
func (h *FeeStructureHandler) DeleteFeeStructure(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	res := h.DB.WithContext(c.Context()).Delete(&model.FeeStructureModel{}, "fee_structure_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "fee structure not found")
	}
	return helper.JsonDeleted(c, "fee structure deleted", fiber.Map{"fee_structure_id": id})
}
