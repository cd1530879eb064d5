package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollmodel "schoolku_backend/internals/features/academics/enrollments/model"
	structmodel "schoolku_backend/internals/features/academics/structure/model"
	model "schoolku_backend/internals/features/finance/billings/model"
)

// ErrNotEnrolled: the student has no enrollment for the academic year.
var ErrNotEnrolled = errors.New("student is not enrolled for the academic year")

// BillingService materializes student bills from fee structures.
// Generation is idempotent: a bill that already exists for
// (student, year, fee structure) is returned unchanged.
type BillingService struct {
	DB *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db}
}

// GenerateBills creates the missing bills for one student in one academic
// year, from every fee structure of the enrollment's grade. Returns the
// full bill set for (student, year, grade structures), existing rows
// included.
func (s *BillingService) GenerateBills(ctx context.Context, studentID, academicYearID uuid.UUID) ([]model.StudentBillModel, error) {
	var bills []model.StudentBillModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		gradeID, err := s.resolveEnrolledGrade(tx, studentID, academicYearID)
		if err != nil {
			return err
		}

		var structures []model.FeeStructureModel
		if err := tx.
			Where("fee_structure_academic_year_id = ? AND fee_structure_grade_id = ?", academicYearID, gradeID).
			Order("fee_structure_category ASC").
			Find(&structures).Error; err != nil {
			return err
		}

		for _, fs := range structures {
			bill, err := s.ensureBill(tx, studentID, academicYearID, fs, nil)
			if err != nil {
				return err
			}
			bills = append(bills, bill)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bills, nil
}

// BulkResult reports one bulk run. Failures carry the per-student error
// strings so the batch stays auditable.
type BulkResult struct {
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Failures  map[string]string `json:"failures,omitempty"` // student id → error
}

// GenerateBulk runs GenerateBills for every active enrollment of the
// year. One student's failure does not abort the batch.
func (s *BillingService) GenerateBulk(ctx context.Context, academicYearID uuid.UUID) (BulkResult, error) {
	res := BulkResult{Failures: map[string]string{}}

	var enrollments []enrollmodel.EnrollmentModel
	if err := s.DB.WithContext(ctx).
		Where("enrollment_academic_year_id = ? AND enrollment_status = ?", academicYearID, enrollmodel.EnrollmentStatusActive).
		Find(&enrollments).Error; err != nil {
		return res, err
	}

	for _, en := range enrollments {
		if _, err := s.GenerateBills(ctx, en.EnrollmentStudentID, academicYearID); err != nil {
			res.Failed++
			res.Failures[en.EnrollmentStudentID.String()] = err.Error()
			log.Printf("[BILLING] bulk generate: student=%s year=%s err=%v", en.EnrollmentStudentID, academicYearID, err)
			continue
		}
		res.Processed++
	}
	if len(res.Failures) == 0 {
		res.Failures = nil
	}
	return res, nil
}

// CreateManualBills bills an explicit fee-structure id list, outside the
// per-grade automatic set. Unknown ids are skipped silently; existing
// bills are never duplicated. Returns the count of bills newly created.
func (s *BillingService) CreateManualBills(ctx context.Context, studentID, academicYearID uuid.UUID, feeStructureIDs []uuid.UUID, issuedDate time.Time) (int, error) {
	created := 0

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.resolveEnrolledGrade(tx, studentID, academicYearID); err != nil {
			return err
		}

		for _, fsID := range feeStructureIDs {
			var fs model.FeeStructureModel
			if err := tx.First(&fs, "fee_structure_id = ?", fsID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // unknown structure id: skip, not an error
				}
				return err
			}

			var existing int64
			if err := tx.Model(&model.StudentBillModel{}).
				Where("student_bill_student_id = ? AND student_bill_academic_year_id = ? AND student_bill_fee_structure_id = ?",
					studentID, academicYearID, fsID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			if _, err := s.ensureBill(tx, studentID, academicYearID, fs, &issuedDate); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// ListBills returns the bills of one student for one year, newest first.
func (s *BillingService) ListBills(ctx context.Context, studentID, academicYearID uuid.UUID) ([]model.StudentBillModel, error) {
	var bills []model.StudentBillModel
	err := s.DB.WithContext(ctx).
		Preload("FeeStructure").
		Where("student_bill_student_id = ? AND student_bill_academic_year_id = ?", studentID, academicYearID).
		Order("student_bill_created_at DESC").
		Find(&bills).Error
	return bills, err
}

// resolveEnrolledGrade maps (student, year) onto the enrolled section's
// grade, or ErrNotEnrolled.
func (s *BillingService) resolveEnrolledGrade(tx *gorm.DB, studentID, academicYearID uuid.UUID) (uuid.UUID, error) {
	var en enrollmodel.EnrollmentModel
	if err := tx.
		Where("enrollment_student_id = ? AND enrollment_academic_year_id = ?", studentID, academicYearID).
		First(&en).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNotEnrolled
		}
		return uuid.Nil, err
	}

	var section structmodel.ClassSectionModel
	if err := tx.First(&section, "class_section_id = ?", en.EnrollmentSectionID).Error; err != nil {
		return uuid.Nil, err
	}
	return section.ClassSectionGradeID, nil
}

// ensureBill returns the existing bill for (student, year, structure) or
// creates a pending one from the structure's amount.
func (s *BillingService) ensureBill(tx *gorm.DB, studentID, academicYearID uuid.UUID, fs model.FeeStructureModel, issuedDate *time.Time) (model.StudentBillModel, error) {
	var bill model.StudentBillModel
	err := tx.
		Where("student_bill_student_id = ? AND student_bill_academic_year_id = ? AND student_bill_fee_structure_id = ?",
			studentID, academicYearID, fs.FeeStructureID).
		First(&bill).Error
	if err == nil {
		return bill, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return bill, err
	}

	bill = model.StudentBillModel{
		StudentBillStudentID:      studentID,
		StudentBillAcademicYearID: academicYearID,
		StudentBillFeeStructureID: fs.FeeStructureID,
		StudentBillTotalAmount:    fs.FeeStructureAmount,
		StudentBillAmountPaid:     0,
		StudentBillBalance:        fs.FeeStructureAmount,
		StudentBillStatus:         model.StudentBillStatusPending,
		StudentBillIssuedDate:     issuedDate,
		StudentBillDueDate:        fs.FeeStructureDueDate,
	}
	if err := tx.Create(&bill).Error; err != nil {
		// a concurrent generation may have won the unique index race
		return bill, err
	}
	return bill, nil
}
