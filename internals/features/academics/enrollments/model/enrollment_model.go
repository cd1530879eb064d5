package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	EnrollmentStatusActive      EnrollmentStatus = "active"
	EnrollmentStatusTransferred EnrollmentStatus = "transferred"
	EnrollmentStatusLeft        EnrollmentStatus = "left"
)

// EnrollmentModel ties a student to a class section within one academic
// year. One enrollment per (student, year); billing requires it.
type EnrollmentModel struct {
	EnrollmentID             uuid.UUID        `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentStudentID      uuid.UUID        `gorm:"column:enrollment_student_id;type:uuid;not null;index;uniqueIndex:uniq_enrollment_student_year,priority:1" json:"enrollment_student_id"`
	EnrollmentAcademicYearID uuid.UUID        `gorm:"column:enrollment_academic_year_id;type:uuid;not null;index;uniqueIndex:uniq_enrollment_student_year,priority:2" json:"enrollment_academic_year_id"`
	EnrollmentSectionID      uuid.UUID        `gorm:"column:enrollment_section_id;type:uuid;not null;index" json:"enrollment_section_id"`
	EnrollmentStatus         EnrollmentStatus `gorm:"column:enrollment_status;type:varchar(20);not null;default:'active';index" json:"enrollment_status"`
	EnrollmentJoinedAt       time.Time        `gorm:"column:enrollment_joined_at;not null" json:"enrollment_joined_at"`
	EnrollmentLeftAt         *time.Time       `gorm:"column:enrollment_left_at" json:"enrollment_left_at,omitempty"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;not null" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;not null" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"-"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	now := time.Now()
	if m.EnrollmentCreatedAt.IsZero() {
		m.EnrollmentCreatedAt = now
	}
	if m.EnrollmentJoinedAt.IsZero() {
		m.EnrollmentJoinedAt = now
	}
	m.EnrollmentUpdatedAt = now
	return nil
}

func (m *EnrollmentModel) BeforeUpdate(tx *gorm.DB) error {
	m.EnrollmentUpdatedAt = time.Now()
	return nil
}
