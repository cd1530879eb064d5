package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "schoolku_backend/internals/features/academics/exams/dto"
	model "schoolku_backend/internals/features/academics/exams/model"
	helper "schoolku_backend/internals/helpers"
)

type ExamResultHandler struct {
	DB *gorm.DB
}

// ====== BULK UPSERT
// POST /api/a/exam-results/bulk
// Records one score sheet: every student of a (exam, section, subject)
// combination in a single transaction. Re-submitting the sheet overwrites
// the previous scores.
func (h *ExamResultHandler) BulkUpsertResults(c *fiber.Ctx) error {
	var body dto.BulkUpsertResultsDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rows := make([]model.ExamResultModel, 0, len(body.Results))
	for _, r := range body.Results {
		rows = append(rows, model.ExamResultModel{
			ExamResultExamID:    body.ExamID,
			ExamResultSectionID: body.SectionID,
			ExamResultSubjectID: body.SubjectID,
			ExamResultStudentID: r.StudentID,
			ExamResultScore:     r.Score,
			ExamResultGrade:     r.Grade,
			ExamResultRemarks:   r.Remarks,
		})
	}

	err := h.DB.WithContext(c.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "exam_result_student_id"},
				{Name: "exam_result_subject_id"},
				{Name: "exam_result_exam_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"exam_result_section_id",
				"exam_result_score",
				"exam_result_grade",
				"exam_result_remarks",
				"exam_result_updated_at",
			}),
		}).
		Create(&rows).Error
	if err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unknown student, subject or exam")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save results")
	}
	return helper.JsonOK(c, "Results saved", fiber.Map{"saved": len(rows)})
}

// ====== LIST
// GET /api/a/exam-results?exam_id=...&section_id=...&subject_id=...
func (h *ExamResultHandler) ListResults(c *fiber.Ctx) error {
	examID, err := uuidQuery(c, "exam_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "exam_id is required")
	}

	q := h.DB.WithContext(c.Context()).Model(&model.ExamResultModel{}).
		Where("exam_result_exam_id = ?", examID)
	if s := c.Query("section_id"); s != "" {
		sectionID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section_id")
		}
		q = q.Where("exam_result_section_id = ?", sectionID)
	}
	if s := c.Query("subject_id"); s != "" {
		subjectID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject_id")
		}
		q = q.Where("exam_result_subject_id = ?", subjectID)
	}

	var results []model.ExamResultModel
	if err := q.Order("exam_result_student_id ASC").Find(&results).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list results")
	}
	return helper.JsonOK(c, "OK", dto.ToExamResultResponses(results))
}

// ====== DELETE
// DELETE /api/a/exam-results/:id (soft)
func (h *ExamResultHandler) DeleteResult(c *fiber.Ctx) error {
	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid result id")
	}
	res := h.DB.WithContext(c.Context()).
		Delete(&model.ExamResultModel{}, "exam_result_id = ?", resultID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete result")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Result not found")
	}
	return helper.JsonDeleted(c, "Result deleted", fiber.Map{"exam_result_id": resultID})
}
