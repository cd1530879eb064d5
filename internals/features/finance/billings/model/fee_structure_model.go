package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeStructureModel is the (year, grade, category)-scoped fee template
// bills are generated from.
type FeeStructureModel struct {
	FeeStructureID             uuid.UUID `gorm:"column:fee_structure_id;type:uuid;primaryKey" json:"fee_structure_id"`
	FeeStructureAcademicYearID uuid.UUID `gorm:"column:fee_structure_academic_year_id;type:uuid;not null;index;uniqueIndex:uniq_fee_structure_scope,priority:1" json:"fee_structure_academic_year_id"`
	FeeStructureGradeID        uuid.UUID `gorm:"column:fee_structure_grade_id;type:uuid;not null;index;uniqueIndex:uniq_fee_structure_scope,priority:2" json:"fee_structure_grade_id"`
	FeeStructureCategory       string    `gorm:"column:fee_structure_category;type:varchar(50);not null;uniqueIndex:uniq_fee_structure_scope,priority:3" json:"fee_structure_category"`

	FeeStructureAmount  int64      `gorm:"column:fee_structure_amount;not null;check:fee_structure_amount>=0" json:"fee_structure_amount"`
	FeeStructureDueDate *time.Time `gorm:"column:fee_structure_due_date" json:"fee_structure_due_date,omitempty"`

	FeeStructureCreatedAt time.Time      `gorm:"column:fee_structure_created_at;not null" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt time.Time      `gorm:"column:fee_structure_updated_at;not null" json:"fee_structure_updated_at"`
	FeeStructureDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;index" json:"-"`
}

func (FeeStructureModel) TableName() string { return "fee_structures" }

func (m *FeeStructureModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeeStructureID == uuid.Nil {
		m.FeeStructureID = uuid.New()
	}
	now := time.Now()
	if m.FeeStructureCreatedAt.IsZero() {
		m.FeeStructureCreatedAt = now
	}
	m.FeeStructureUpdatedAt = now
	return nil
}

func (m *FeeStructureModel) BeforeUpdate(tx *gorm.DB) error {
	m.FeeStructureUpdatedAt = time.Now()
	return nil
}
