package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey" json:"subject_id"`
	SubjectName string    `gorm:"column:subject_name;type:varchar(100);not null" json:"subject_name"`
	SubjectCode string    `gorm:"column:subject_code;type:varchar(20);not null;uniqueIndex:uniq_subject_code" json:"subject_code"`

	SubjectCreatedAt time.Time      `gorm:"column:subject_created_at;not null" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"column:subject_updated_at;not null" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"-"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	now := time.Now()
	if m.SubjectCreatedAt.IsZero() {
		m.SubjectCreatedAt = now
	}
	m.SubjectUpdatedAt = now
	return nil
}
