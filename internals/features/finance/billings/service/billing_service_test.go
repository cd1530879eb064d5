package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	enrollmodel "schoolku_backend/internals/features/academics/enrollments/model"
	structmodel "schoolku_backend/internals/features/academics/structure/model"
	model "schoolku_backend/internals/features/finance/billings/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one in-memory database for all queries

	require.NoError(t, db.AutoMigrate(
		&structmodel.AcademicYearModel{},
		&structmodel.GradeModel{},
		&structmodel.ClassSectionModel{},
		&enrollmodel.EnrollmentModel{},
		&model.FeeStructureModel{},
		&model.StudentBillModel{},
	))
	return db
}

type fixture struct {
	year    structmodel.AcademicYearModel
	grade   structmodel.GradeModel
	section structmodel.ClassSectionModel
}

func seedStructure(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{
		year: structmodel.AcademicYearModel{
			AcademicYearName:      "2025-2026",
			AcademicYearStartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			AcademicYearEndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			AcademicYearIsActive:  true,
		},
		grade: structmodel.GradeModel{GradeName: "Grade 1", GradeLevel: 1},
	}
	require.NoError(t, db.Create(&f.year).Error)
	require.NoError(t, db.Create(&f.grade).Error)
	f.section = structmodel.ClassSectionModel{
		ClassSectionGradeID: f.grade.GradeID,
		ClassSectionName:    "A",
	}
	require.NoError(t, db.Create(&f.section).Error)
	return f
}

func enrollStudent(t *testing.T, db *gorm.DB, f fixture) uuid.UUID {
	t.Helper()
	studentID := uuid.New()
	require.NoError(t, db.Create(&enrollmodel.EnrollmentModel{
		EnrollmentStudentID:      studentID,
		EnrollmentAcademicYearID: f.year.AcademicYearID,
		EnrollmentSectionID:      f.section.ClassSectionID,
		EnrollmentStatus:         enrollmodel.EnrollmentStatusActive,
	}).Error)
	return studentID
}

func addFeeStructure(t *testing.T, db *gorm.DB, f fixture, category string, amount int64) model.FeeStructureModel {
	t.Helper()
	fs := model.FeeStructureModel{
		FeeStructureAcademicYearID: f.year.AcademicYearID,
		FeeStructureGradeID:        f.grade.GradeID,
		FeeStructureCategory:       category,
		FeeStructureAmount:         amount,
	}
	require.NoError(t, db.Create(&fs).Error)
	return fs
}

func TestGenerateBills_NotEnrolled(t *testing.T) {
	db := setupDB(t)
	f := seedStructure(t, db)
	svc := NewBillingService(db)

	_, err := svc.GenerateBills(context.Background(), uuid.New(), f.year.AcademicYearID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestGenerateBills_CreatesPendingBills(t *testing.T) {
	db := setupDB(t)
	f := seedStructure(t, db)
	addFeeStructure(t, db, f, "Tuition", 5000)
	addFeeStructure(t, db, f, "Transport", 1200)
	studentID := enrollStudent(t, db, f)
	svc := NewBillingService(db)

	bills, err := svc.GenerateBills(context.Background(), studentID, f.year.AcademicYearID)
	require.NoError(t, err)
	require.Len(t, bills, 2)

	for _, b := range bills {
		assert.Equal(t, model.StudentBillStatusPending, b.StudentBillStatus)
		assert.Equal(t, int64(0), b.StudentBillAmountPaid)
		assert.Equal(t, b.StudentBillTotalAmount, b.StudentBillBalance)
	}
}

func TestGenerateBills_Idempotent(t *testing.T) {
	db := setupDB(t)
	f := seedStructure(t, db)
	addFeeStructure(t, db, f, "Tuition", 5000)
	studentID := enrollStudent(t, db, f)
	svc := NewBillingService(db)

	first, err := svc.GenerateBills(context.Background(), studentID, f.year.AcademicYearID)
	require.NoError(t, err)
	second, err := svc.GenerateBills(context.Background(), studentID, f.year.AcademicYearID)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].StudentBillID, second[0].StudentBillID)
	assert.Equal(t, first[0].StudentBillTotalAmount, second[0].StudentBillTotalAmount)

	var count int64
	require.NoError(t, db.Model(&model.StudentBillModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGenerateBulk_ContinuesOnFailure(t *testing.T) {
	db := setupDB(t)
	f := seedStructure(t, db)
	addFeeStructure(t, db, f, "Tuition", 5000)

	okStudent := enrollStudent(t, db, f)

	// enrollment pointing at a section that no longer exists makes the
	// per-student generation fail
	badStudent := uuid.New()
	require.NoError(t, db.Create(&enrollmodel.EnrollmentModel{
		EnrollmentStudentID:      badStudent,
		EnrollmentAcademicYearID: f.year.AcademicYearID,
		EnrollmentSectionID:      uuid.New(),
		EnrollmentStatus:         enrollmodel.EnrollmentStatusActive,
	}).Error)

	svc := NewBillingService(db)
	res, err := svc.GenerateBulk(context.Background(), f.year.AcademicYearID)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Failed)
	assert.Contains(t, res.Failures, badStudent.String())

	var count int64
	require.NoError(t, db.Model(&model.StudentBillModel{}).
		Where("student_bill_student_id = ?", okStudent).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateManualBills_SkipsUnknownAndExisting(t *testing.T) {
	db := setupDB(t)
	f := seedStructure(t, db)
	fs := addFeeStructure(t, db, f, "Lab Fee", 800)
	studentID := enrollStudent(t, db, f)
	svc := NewBillingService(db)

	issued := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	created, err := svc.CreateManualBills(context.Background(), studentID, f.year.AcademicYearID,
		[]uuid.UUID{fs.FeeStructureID, uuid.New()}, issued)
	require.NoError(t, err)
	assert.Equal(t, 1, created) // unknown id skipped silently

	// re-run: existing bill not duplicated
	created, err = svc.CreateManualBills(context.Background(), studentID, f.year.AcademicYearID,
		[]uuid.UUID{fs.FeeStructureID}, issued)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	var count int64
	require.NoError(t, db.Model(&model.StudentBillModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeriveBillStatus(t *testing.T) {
	assert.Equal(t, model.StudentBillStatusPending, model.DeriveBillStatus(0, 5000))
	assert.Equal(t, model.StudentBillStatusPartiallyPaid, model.DeriveBillStatus(2000, 5000))
	assert.Equal(t, model.StudentBillStatusFullyPaid, model.DeriveBillStatus(5000, 5000))
}
