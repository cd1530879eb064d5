package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentBillStatus string

const (
	StudentBillStatusPending       StudentBillStatus = "pending"
	StudentBillStatusPartiallyPaid StudentBillStatus = "partially_paid"
	StudentBillStatusFullyPaid     StudentBillStatus = "fully_paid"
)

// DeriveBillStatus maps paid/total onto the bill status.
// paid == 0 → pending; 0 < paid < total → partially paid; paid == total → fully paid.
func DeriveBillStatus(paid, total int64) StudentBillStatus {
	switch {
	case paid <= 0:
		return StudentBillStatusPending
	case paid < total:
		return StudentBillStatusPartiallyPaid
	default:
		return StudentBillStatusFullyPaid
	}
}

// StudentBillModel is one student's obligation for one fee-structure line
// item in one academic year. Created by the billing generator, mutated
// only by the payment ledger. balance == total - paid always holds.
type StudentBillModel struct {
	StudentBillID             uuid.UUID `gorm:"column:student_bill_id;type:uuid;primaryKey" json:"student_bill_id"`
	StudentBillStudentID      uuid.UUID `gorm:"column:student_bill_student_id;type:uuid;not null;index;uniqueIndex:uniq_bill_student_year_structure,priority:1" json:"student_bill_student_id"`
	StudentBillAcademicYearID uuid.UUID `gorm:"column:student_bill_academic_year_id;type:uuid;not null;index;uniqueIndex:uniq_bill_student_year_structure,priority:2" json:"student_bill_academic_year_id"`
	StudentBillFeeStructureID uuid.UUID `gorm:"column:student_bill_fee_structure_id;type:uuid;not null;index;uniqueIndex:uniq_bill_student_year_structure,priority:3" json:"student_bill_fee_structure_id"`

	StudentBillTotalAmount int64             `gorm:"column:student_bill_total_amount;not null;check:student_bill_total_amount>=0" json:"student_bill_total_amount"`
	StudentBillAmountPaid  int64             `gorm:"column:student_bill_amount_paid;not null;default:0;check:student_bill_amount_paid>=0" json:"student_bill_amount_paid"`
	StudentBillBalance     int64             `gorm:"column:student_bill_balance;not null;check:student_bill_balance>=0" json:"student_bill_balance"`
	StudentBillStatus      StudentBillStatus `gorm:"column:student_bill_status;type:varchar(20);not null;default:'pending';index" json:"student_bill_status"`

	StudentBillIssuedDate *time.Time `gorm:"column:student_bill_issued_date" json:"student_bill_issued_date,omitempty"`
	StudentBillDueDate    *time.Time `gorm:"column:student_bill_due_date" json:"student_bill_due_date,omitempty"`

	StudentBillCreatedAt time.Time      `gorm:"column:student_bill_created_at;not null" json:"student_bill_created_at"`
	StudentBillUpdatedAt time.Time      `gorm:"column:student_bill_updated_at;not null" json:"student_bill_updated_at"`
	StudentBillDeletedAt gorm.DeletedAt `gorm:"column:student_bill_deleted_at;index" json:"-"`

	FeeStructure *FeeStructureModel `gorm:"foreignKey:StudentBillFeeStructureID;references:FeeStructureID" json:"fee_structure,omitempty"`
}

func (StudentBillModel) TableName() string { return "student_bills" }

func (m *StudentBillModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentBillID == uuid.Nil {
		m.StudentBillID = uuid.New()
	}
	now := time.Now()
	if m.StudentBillCreatedAt.IsZero() {
		m.StudentBillCreatedAt = now
	}
	m.StudentBillUpdatedAt = now
	return nil
}

func (m *StudentBillModel) BeforeUpdate(tx *gorm.DB) error {
	m.StudentBillUpdatedAt = time.Now()
	return nil
}
