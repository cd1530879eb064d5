package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID            uuid.UUID  `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentUserID        *uuid.UUID `gorm:"column:student_user_id;type:uuid;index" json:"student_user_id,omitempty"`
	StudentNumber        string     `gorm:"column:student_number;type:varchar(30);not null;uniqueIndex:uniq_student_number" json:"student_number"`
	StudentFullName      string     `gorm:"column:student_full_name;type:varchar(150);not null" json:"student_full_name"`
	StudentGender        *string    `gorm:"column:student_gender;type:varchar(10)" json:"student_gender,omitempty"`
	StudentBirthDate     *time.Time `gorm:"column:student_birth_date" json:"student_birth_date,omitempty"`
	StudentGuardianName  *string    `gorm:"column:student_guardian_name;type:varchar(150)" json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string    `gorm:"column:student_guardian_phone;type:varchar(30)" json:"student_guardian_phone,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	now := time.Now()
	if m.StudentCreatedAt.IsZero() {
		m.StudentCreatedAt = now
	}
	m.StudentUpdatedAt = now
	return nil
}

func (m *StudentModel) BeforeUpdate(tx *gorm.DB) error {
	m.StudentUpdatedAt = time.Now()
	return nil
}
