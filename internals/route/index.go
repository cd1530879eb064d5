package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	attendanceRoute "schoolku_backend/internals/features/academics/attendance/route"
	enrollmentRoute "schoolku_backend/internals/features/academics/enrollments/route"
	examRoute "schoolku_backend/internals/features/academics/exams/route"
	structureRoute "schoolku_backend/internals/features/academics/structure/route"
	studentRoute "schoolku_backend/internals/features/academics/students/route"
	auditRoute "schoolku_backend/internals/features/audit/route"
	billingRoute "schoolku_backend/internals/features/finance/billings/route"
	paymentRoute "schoolku_backend/internals/features/finance/payments/route"
	rbacRoute "schoolku_backend/internals/features/users/rbac/route"
	rbacsvc "schoolku_backend/internals/features/users/rbac/service"
	userRoute "schoolku_backend/internals/features/users/user/route"
	"schoolku_backend/internals/middlewares"
	authmw "schoolku_backend/internals/middlewares/auth"
	capmw "schoolku_backend/internals/middlewares/features"
)

// SetupRoutes mounts the whole API surface:
//
//	/api/login  public auth (tight rate limit)
//	/api/u      any authenticated user
//	/api/a      staff endpoints, gated per capability
//
// The capability cache built here is the same instance the RBAC
// controllers invalidate on mutation.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	cache := rbacsvc.NewCapabilityCache(db, rbacsvc.DefaultTTL)

	api := app.Group("/api")

	// ---- public
	login := api.Group("/login", middlewares.LoginRateLimiter())
	userRoute.AuthRoutes(login, db)
	paymentRoute.PaymentWebhookRoutes(api, db)

	// ---- authenticated
	authed := api.Group("/u", authmw.AuthJWT(authmw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}))
	userRoute.UserSelfRoutes(authed, db)
	examRoute.ExamUserRoutes(authed, db)

	// ---- staff, per-capability groups
	admin := api.Group("/a", authmw.AuthJWT(authmw.AuthJWTOpts{Secret: configs.JWTSecret}))

	gate := func(capability string) fiber.Router {
		return admin.Group("", capmw.RequireCapability(cache, capability))
	}

	userRoute.UserAdminRoutes(gate(constants.CapUsersManage), db)
	rbacRoute.RbacRoutes(gate(constants.CapRolesManage), db, cache)
	structureRoute.StructureRoutes(gate(constants.CapAcademicsManage), db)
	studentRoute.StudentRoutes(gate(constants.CapStudentsManage), db)
	enrollmentRoute.EnrollmentRoutes(gate(constants.CapEnrollmentManage), db)
	attendanceRoute.AttendanceRoutes(gate(constants.CapAttendanceManage), db)
	examRoute.ExamAdminRoutes(gate(constants.CapResultsManage), db)
	examRoute.ExamPublishRoutes(gate(constants.CapResultsPublish), db)
	billingRoute.BillingRoutes(gate(constants.CapBillingManage), db)
	paymentRoute.PaymentRoutes(gate(constants.CapPaymentsManage), db)
	auditRoute.AuditRoutes(gate(constants.CapAuditView), db)

	log.Println("✅ Routes mounted: /api/login /api/u /api/a")
}
