package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/academics/exams/dto"
	model "schoolku_backend/internals/features/academics/exams/model"
	service "schoolku_backend/internals/features/academics/exams/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type PublishHandler struct {
	Service *service.PublishService
	Results *service.ResultService
}

// ====== PUBLISH
// POST /api/a/exams/:id/publish
// Marks results visible for the requested scope. Returns how many
// (section, subject) targets were newly published; re-publishing an
// already-published target contributes zero.
func (h *PublishHandler) Publish(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var body dto.PublishResultsDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	target, err := service.TargetFromParams(body.Scope, body.GradeID, body.SectionID, body.SubjectID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if body.Scope == string(model.PublishScopeGrade) {
		ok, err := h.Service.GradeExists(c.Context(), *body.GradeID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check grade")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
	}

	userID, err := helperAuth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	created, err := h.Service.Publish(c.Context(), examID, target, userID, body.PublishedAt)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to publish results")
	}
	return helper.JsonOK(c, "Results published", dto.PublishResultsResponse{Created: created})
}

// ====== PREVIEW
// GET /api/a/exams/:id/publish/preview?scope=...&grade_id=...&section_id=...&subject_id=...
// Counts the result rows a publish call with the same scope would cover.
func (h *PublishHandler) Preview(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	target, err := service.TargetFromParams(
		c.Query("scope"),
		optionalUUIDQuery(c, "grade_id"),
		optionalUUIDQuery(c, "section_id"),
		optionalUUIDQuery(c, "subject_id"),
	)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	count, err := h.Service.PreviewCount(c.Context(), examID, target)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to preview publication")
	}
	return helper.JsonOK(c, "OK", dto.PublishPreviewResponse{ResultCount: count})
}

// ====== LIST PUBLICATIONS
// GET /api/a/exams/:id/publications
func (h *PublishHandler) ListPublications(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam id")
	}

	var rows []model.PublishedResultModel
	if err := h.Service.DB.WithContext(c.Context()).
		Where("published_result_exam_id = ?", examID).
		Order("published_result_published_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list publications")
	}
	return helper.JsonOK(c, "OK", rows)
}

// ====== MY RESULTS
// GET /api/u/results?exam_id=...
// Student-facing view. Only results covered by a publication row are
// returned; everything else stays invisible.
func (h *PublishHandler) MyResults(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	studentID, err := h.Results.StudentForUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No student record linked to this account")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve student")
	}

	results, err := h.Results.VisibleResults(c.Context(), studentID, optionalUUIDQuery(c, "exam_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list results")
	}
	return helper.JsonOK(c, "OK", dto.ToExamResultResponses(results))
}

func optionalUUIDQuery(c *fiber.Ctx, name string) *uuid.UUID {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
