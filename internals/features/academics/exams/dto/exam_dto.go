package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/academics/exams/model"
)

/* =========================================================
   Exams
========================================================= */

type ExamCreateDTO struct {
	AcademicYearID uuid.UUID  `json:"academic_year_id" validate:"required"`
	Name           string     `json:"name" validate:"required,max=100"`
	Term           *string    `json:"term,omitempty" validate:"omitempty,max=30"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

type ExamUpdateDTO struct {
	Name      *string    `json:"name,omitempty" validate:"omitempty,max=100"`
	Term      *string    `json:"term,omitempty" validate:"omitempty,max=30"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (d ExamCreateDTO) ToModel() model.ExamModel {
	return model.ExamModel{
		ExamAcademicYearID: d.AcademicYearID,
		ExamName:           d.Name,
		ExamTerm:           d.Term,
		ExamStartDate:      d.StartDate,
		ExamEndDate:        d.EndDate,
	}
}

/* =========================================================
   Results
========================================================= */

type ExamResultUpsertDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Score     float64   `json:"score" validate:"min=0,max=100"`
	Grade     *string   `json:"grade,omitempty" validate:"omitempty,max=5"`
	Remarks   *string   `json:"remarks,omitempty" validate:"omitempty,max=255"`
}

// BulkUpsertResultsDTO records the scores of one (exam, section, subject)
// sheet in a single request.
type BulkUpsertResultsDTO struct {
	ExamID    uuid.UUID             `json:"exam_id" validate:"required"`
	SectionID uuid.UUID             `json:"section_id" validate:"required"`
	SubjectID uuid.UUID             `json:"subject_id" validate:"required"`
	Results   []ExamResultUpsertDTO `json:"results" validate:"required,min=1,max=200,dive"`
}

type ExamResultResponse struct {
	ExamResultID uuid.UUID `json:"exam_result_id"`
	ExamID       uuid.UUID `json:"exam_id"`
	StudentID    uuid.UUID `json:"student_id"`
	SubjectID    uuid.UUID `json:"subject_id"`
	SectionID    uuid.UUID `json:"section_id"`
	Score        float64   `json:"score"`
	Grade        *string   `json:"grade,omitempty"`
	Remarks      *string   `json:"remarks,omitempty"`
}

func ToExamResultResponse(m model.ExamResultModel) ExamResultResponse {
	return ExamResultResponse{
		ExamResultID: m.ExamResultID,
		ExamID:       m.ExamResultExamID,
		StudentID:    m.ExamResultStudentID,
		SubjectID:    m.ExamResultSubjectID,
		SectionID:    m.ExamResultSectionID,
		Score:        m.ExamResultScore,
		Grade:        m.ExamResultGrade,
		Remarks:      m.ExamResultRemarks,
	}
}

func ToExamResultResponses(ms []model.ExamResultModel) []ExamResultResponse {
	out := make([]ExamResultResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToExamResultResponse(m))
	}
	return out
}

/* =========================================================
   Publication
========================================================= */

type PublishResultsDTO struct {
	Scope       string     `json:"scope" validate:"required,oneof=exam grade section subject"`
	GradeID     *uuid.UUID `json:"grade_id,omitempty"`
	SectionID   *uuid.UUID `json:"section_id,omitempty"`
	SubjectID   *uuid.UUID `json:"subject_id,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type PublishResultsResponse struct {
	Created int `json:"created"`
}

type PublishPreviewResponse struct {
	ResultCount int64 `json:"result_count"`
}
