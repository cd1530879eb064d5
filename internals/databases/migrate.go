package database

import (
	"log"
	"os"

	"gorm.io/gorm"

	attendancemodel "schoolku_backend/internals/features/academics/attendance/model"
	enrollmentmodel "schoolku_backend/internals/features/academics/enrollments/model"
	exammodel "schoolku_backend/internals/features/academics/exams/model"
	structmodel "schoolku_backend/internals/features/academics/structure/model"
	studentmodel "schoolku_backend/internals/features/academics/students/model"
	auditmodel "schoolku_backend/internals/features/audit/model"
	billmodel "schoolku_backend/internals/features/finance/billings/model"
	paymodel "schoolku_backend/internals/features/finance/payments/model"
	rbacmodel "schoolku_backend/internals/features/users/rbac/model"
	usermodel "schoolku_backend/internals/features/users/user/model"
)

// AllModels is the full schema, in FK dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&usermodel.UserModel{},
		&rbacmodel.RoleModel{},
		&rbacmodel.PermissionModel{},
		&rbacmodel.RolePermissionModel{},
		&rbacmodel.UserRoleModel{},
		&structmodel.AcademicYearModel{},
		&structmodel.GradeModel{},
		&structmodel.ClassSectionModel{},
		&structmodel.SubjectModel{},
		&studentmodel.StudentModel{},
		&enrollmentmodel.EnrollmentModel{},
		&attendancemodel.AttendanceRecordModel{},
		&exammodel.ExamModel{},
		&exammodel.ExamResultModel{},
		&exammodel.PublishedResultModel{},
		&billmodel.FeeStructureModel{},
		&billmodel.StudentBillModel{},
		&paymodel.PaymentModel{},
		&paymodel.PaymentReceiptModel{},
		&auditmodel.AuditLogModel{},
	}
}

// MigrateAll runs schema migration for every model on the given handle.
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// AutoMigrate runs schema migration when DB_AUTOMIGRATE=true. Production
// schemas are managed by SQL migrations; this path is for local and CI
// databases.
func AutoMigrate() {
	if os.Getenv("DB_AUTOMIGRATE") != "true" {
		return
	}
	if err := MigrateAll(DB); err != nil {
		log.Fatalf("automigrate failed: %v", err)
	}
	log.Println("✅ AutoMigrate complete")
}
