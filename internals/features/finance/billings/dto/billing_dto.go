package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/finance/billings/model"
)

/* ===============================
   FEE STRUCTURES
=================================*/

type FeeStructureCreateDTO struct {
	FeeStructureAcademicYearID uuid.UUID  `json:"fee_structure_academic_year_id" validate:"required"`
	FeeStructureGradeID        uuid.UUID  `json:"fee_structure_grade_id" validate:"required"`
	FeeStructureCategory       string     `json:"fee_structure_category" validate:"required,max=50"`
	FeeStructureAmount         int64      `json:"fee_structure_amount" validate:"required,gt=0"`
	FeeStructureDueDate        *time.Time `json:"fee_structure_due_date,omitempty"`
}

type FeeStructureUpdateDTO struct {
	FeeStructureAmount  *int64     `json:"fee_structure_amount,omitempty" validate:"omitempty,gt=0"`
	FeeStructureDueDate *time.Time `json:"fee_structure_due_date,omitempty"`
}

type FeeStructureResponse struct {
	FeeStructureID             uuid.UUID  `json:"fee_structure_id"`
	FeeStructureAcademicYearID uuid.UUID  `json:"fee_structure_academic_year_id"`
	FeeStructureGradeID        uuid.UUID  `json:"fee_structure_grade_id"`
	FeeStructureCategory       string     `json:"fee_structure_category"`
	FeeStructureAmount         int64      `json:"fee_structure_amount"`
	FeeStructureDueDate        *time.Time `json:"fee_structure_due_date,omitempty"`
	FeeStructureCreatedAt      time.Time  `json:"fee_structure_created_at"`
	FeeStructureUpdatedAt      time.Time  `json:"fee_structure_updated_at"`
}

func ToFeeStructureResponse(m model.FeeStructureModel) FeeStructureResponse {
	return FeeStructureResponse{
		FeeStructureID:             m.FeeStructureID,
		FeeStructureAcademicYearID: m.FeeStructureAcademicYearID,
		FeeStructureGradeID:        m.FeeStructureGradeID,
		FeeStructureCategory:       m.FeeStructureCategory,
		FeeStructureAmount:         m.FeeStructureAmount,
		FeeStructureDueDate:        m.FeeStructureDueDate,
		FeeStructureCreatedAt:      m.FeeStructureCreatedAt,
		FeeStructureUpdatedAt:      m.FeeStructureUpdatedAt,
	}
}

func FeeStructureCreateDTOToModel(in FeeStructureCreateDTO) model.FeeStructureModel {
	return model.FeeStructureModel{
		FeeStructureAcademicYearID: in.FeeStructureAcademicYearID,
		FeeStructureGradeID:        in.FeeStructureGradeID,
		FeeStructureCategory:       in.FeeStructureCategory,
		FeeStructureAmount:         in.FeeStructureAmount,
		FeeStructureDueDate:        in.FeeStructureDueDate,
	}
}

/* ===============================
   STUDENT BILLS
=================================*/

type GenerateBillsDTO struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
}

type GenerateBulkDTO struct {
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
}

type CreateManualBillsDTO struct {
	StudentID       uuid.UUID   `json:"student_id" validate:"required"`
	AcademicYearID  uuid.UUID   `json:"academic_year_id" validate:"required"`
	FeeStructureIDs []uuid.UUID `json:"fee_structure_ids" validate:"required,min=1"`
	IssuedDate      *time.Time  `json:"issued_date,omitempty"`
}

type StudentBillResponse struct {
	StudentBillID             uuid.UUID               `json:"student_bill_id"`
	StudentBillStudentID      uuid.UUID               `json:"student_bill_student_id"`
	StudentBillAcademicYearID uuid.UUID               `json:"student_bill_academic_year_id"`
	StudentBillFeeStructureID uuid.UUID               `json:"student_bill_fee_structure_id"`
	StudentBillTotalAmount    int64                   `json:"student_bill_total_amount"`
	StudentBillAmountPaid     int64                   `json:"student_bill_amount_paid"`
	StudentBillBalance        int64                   `json:"student_bill_balance"`
	StudentBillStatus         model.StudentBillStatus `json:"student_bill_status"`
	StudentBillIssuedDate     *time.Time              `json:"student_bill_issued_date,omitempty"`
	StudentBillDueDate        *time.Time              `json:"student_bill_due_date,omitempty"`
	FeeStructure              *FeeStructureResponse   `json:"fee_structure,omitempty"`
}

func ToStudentBillResponse(m model.StudentBillModel) StudentBillResponse {
	out := StudentBillResponse{
		StudentBillID:             m.StudentBillID,
		StudentBillStudentID:      m.StudentBillStudentID,
		StudentBillAcademicYearID: m.StudentBillAcademicYearID,
		StudentBillFeeStructureID: m.StudentBillFeeStructureID,
		StudentBillTotalAmount:    m.StudentBillTotalAmount,
		StudentBillAmountPaid:     m.StudentBillAmountPaid,
		StudentBillBalance:        m.StudentBillBalance,
		StudentBillStatus:         m.StudentBillStatus,
		StudentBillIssuedDate:     m.StudentBillIssuedDate,
		StudentBillDueDate:        m.StudentBillDueDate,
	}
	if m.FeeStructure != nil {
		fs := ToFeeStructureResponse(*m.FeeStructure)
		out.FeeStructure = &fs
	}
	return out
}

func ToStudentBillResponses(ms []model.StudentBillModel) []StudentBillResponse {
	out := make([]StudentBillResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToStudentBillResponse(m))
	}
	return out
}
