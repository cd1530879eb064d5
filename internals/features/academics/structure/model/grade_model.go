package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradeModel struct {
	GradeID    uuid.UUID `gorm:"column:grade_id;type:uuid;primaryKey" json:"grade_id"`
	GradeName  string    `gorm:"column:grade_name;type:varchar(50);not null;uniqueIndex:uniq_grade_name" json:"grade_name"`
	GradeLevel int       `gorm:"column:grade_level;not null;index" json:"grade_level"`

	GradeCreatedAt time.Time      `gorm:"column:grade_created_at;not null" json:"grade_created_at"`
	GradeUpdatedAt time.Time      `gorm:"column:grade_updated_at;not null" json:"grade_updated_at"`
	GradeDeletedAt gorm.DeletedAt `gorm:"column:grade_deleted_at;index" json:"-"`
}

func (GradeModel) TableName() string { return "grades" }

func (m *GradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeID == uuid.Nil {
		m.GradeID = uuid.New()
	}
	now := time.Now()
	if m.GradeCreatedAt.IsZero() {
		m.GradeCreatedAt = now
	}
	m.GradeUpdatedAt = now
	return nil
}
