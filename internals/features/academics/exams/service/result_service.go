package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "schoolku_backend/internals/features/academics/exams/model"
)

// ResultService answers the student-facing question: which of my exam
// results are published?
type ResultService struct {
	DB *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{DB: db}
}

// VisibleResults returns the student's results covered by a publication
// row: either the whole section was published (NULL subject) or the
// result's own subject was. Unpublished results never leave the server.
func (s *ResultService) VisibleResults(ctx context.Context, studentID uuid.UUID, examID *uuid.UUID) ([]model.ExamResultModel, error) {
	q := s.DB.WithContext(ctx).Model(&model.ExamResultModel{}).
		Joins(`JOIN published_results ON
			published_results.published_result_exam_id = exam_results.exam_result_exam_id
			AND published_results.published_result_section_id = exam_results.exam_result_section_id
			AND (published_results.published_result_subject_id IS NULL
				OR published_results.published_result_subject_id = exam_results.exam_result_subject_id)`).
		Where("exam_result_student_id = ?", studentID)
	if examID != nil {
		q = q.Where("exam_result_exam_id = ?", *examID)
	}

	var results []model.ExamResultModel
	err := q.Order("exam_result_created_at ASC").Find(&results).Error
	return results, err
}

// StudentForUser resolves the student record linked to an authenticated
// user account.
func (s *ResultService) StudentForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		StudentID uuid.UUID
	}
	err := s.DB.WithContext(ctx).Table("students").
		Select("student_id").
		Where("student_user_id = ? AND student_deleted_at IS NULL", userID).
		Take(&row).Error
	if err != nil {
		return uuid.Nil, err
	}
	return row.StudentID, nil
}
