package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassSectionModel struct {
	ClassSectionID       uuid.UUID `gorm:"column:class_section_id;type:uuid;primaryKey" json:"class_section_id"`
	ClassSectionGradeID  uuid.UUID `gorm:"column:class_section_grade_id;type:uuid;not null;index;uniqueIndex:uniq_section_grade_name,priority:1" json:"class_section_grade_id"`
	ClassSectionName     string    `gorm:"column:class_section_name;type:varchar(50);not null;uniqueIndex:uniq_section_grade_name,priority:2" json:"class_section_name"`
	ClassSectionCapacity int       `gorm:"column:class_section_capacity;not null;default:40;check:class_section_capacity>0" json:"class_section_capacity"`

	ClassSectionCreatedAt time.Time      `gorm:"column:class_section_created_at;not null" json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time      `gorm:"column:class_section_updated_at;not null" json:"class_section_updated_at"`
	ClassSectionDeletedAt gorm.DeletedAt `gorm:"column:class_section_deleted_at;index" json:"-"`

	Grade *GradeModel `gorm:"foreignKey:ClassSectionGradeID;references:GradeID" json:"grade,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }

func (m *ClassSectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSectionID == uuid.Nil {
		m.ClassSectionID = uuid.New()
	}
	now := time.Now()
	if m.ClassSectionCreatedAt.IsZero() {
		m.ClassSectionCreatedAt = now
	}
	m.ClassSectionUpdatedAt = now
	return nil
}
