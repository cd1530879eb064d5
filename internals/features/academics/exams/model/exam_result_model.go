package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExamResultModel: one score per (student, subject, exam).
type ExamResultModel struct {
	ExamResultID        uuid.UUID `gorm:"column:exam_result_id;type:uuid;primaryKey" json:"exam_result_id"`
	ExamResultStudentID uuid.UUID `gorm:"column:exam_result_student_id;type:uuid;not null;index;uniqueIndex:uniq_result_student_subject_exam,priority:1" json:"exam_result_student_id"`
	ExamResultSubjectID uuid.UUID `gorm:"column:exam_result_subject_id;type:uuid;not null;index;uniqueIndex:uniq_result_student_subject_exam,priority:2" json:"exam_result_subject_id"`
	ExamResultExamID    uuid.UUID `gorm:"column:exam_result_exam_id;type:uuid;not null;index;uniqueIndex:uniq_result_student_subject_exam,priority:3" json:"exam_result_exam_id"`
	ExamResultSectionID uuid.UUID `gorm:"column:exam_result_section_id;type:uuid;not null;index" json:"exam_result_section_id"`

	ExamResultScore   float64 `gorm:"column:exam_result_score;not null;check:exam_result_score>=0" json:"exam_result_score"`
	ExamResultGrade   *string `gorm:"column:exam_result_grade;type:varchar(5)" json:"exam_result_grade,omitempty"`
	ExamResultRemarks *string `gorm:"column:exam_result_remarks;type:varchar(255)" json:"exam_result_remarks,omitempty"`

	ExamResultCreatedAt time.Time      `gorm:"column:exam_result_created_at;not null" json:"exam_result_created_at"`
	ExamResultUpdatedAt time.Time      `gorm:"column:exam_result_updated_at;not null" json:"exam_result_updated_at"`
	ExamResultDeletedAt gorm.DeletedAt `gorm:"column:exam_result_deleted_at;index" json:"-"`
}

func (ExamResultModel) TableName() string { return "exam_results" }

func (m *ExamResultModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExamResultID == uuid.Nil {
		m.ExamResultID = uuid.New()
	}
	now := time.Now()
	if m.ExamResultCreatedAt.IsZero() {
		m.ExamResultCreatedAt = now
	}
	m.ExamResultUpdatedAt = now
	return nil
}

func (m *ExamResultModel) BeforeUpdate(tx *gorm.DB) error {
	m.ExamResultUpdatedAt = time.Now()
	return nil
}
