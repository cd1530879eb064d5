package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamModel struct {
	ExamID             uuid.UUID  `gorm:"column:exam_id;type:uuid;primaryKey" json:"exam_id"`
	ExamAcademicYearID uuid.UUID  `gorm:"column:exam_academic_year_id;type:uuid;not null;index" json:"exam_academic_year_id"`
	ExamName           string     `gorm:"column:exam_name;type:varchar(100);not null" json:"exam_name"`
	ExamTerm           *string    `gorm:"column:exam_term;type:varchar(30)" json:"exam_term,omitempty"`
	ExamStartDate      *time.Time `gorm:"column:exam_start_date" json:"exam_start_date,omitempty"`
	ExamEndDate        *time.Time `gorm:"column:exam_end_date" json:"exam_end_date,omitempty"`

	ExamCreatedAt time.Time      `gorm:"column:exam_created_at;not null" json:"exam_created_at"`
	ExamUpdatedAt time.Time      `gorm:"column:exam_updated_at;not null" json:"exam_updated_at"`
	ExamDeletedAt gorm.DeletedAt `gorm:"column:exam_deleted_at;index" json:"-"`
}

func (ExamModel) TableName() string { return "exams" }

func (m *ExamModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExamID == uuid.Nil {
		m.ExamID = uuid.New()
	}
	now := time.Now()
	if m.ExamCreatedAt.IsZero() {
		m.ExamCreatedAt = now
	}
	m.ExamUpdatedAt = now
	return nil
}
