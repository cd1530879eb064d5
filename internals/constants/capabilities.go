package constants

// Capability strings checked by the RequireCapability middleware.
// Permissions in the database map onto these; unknown permission names
// are ignored when the capability cache loads.
const (
	CapUsersManage      = "users.manage"
	CapRolesManage      = "roles.manage"
	CapAcademicsManage  = "academics.manage"
	CapStudentsManage   = "students.manage"
	CapEnrollmentManage = "enrollment.manage"
	CapAttendanceManage = "attendance.manage"
	CapResultsManage    = "results.manage"
	CapResultsPublish   = "results.publish"
	CapBillingManage    = "billing.manage"
	CapPaymentsManage   = "payments.manage"
	CapAuditView        = "audit.view"
)

// AllCapabilities is the closed set of valid capability strings.
var AllCapabilities = []string{
	CapUsersManage,
	CapRolesManage,
	CapAcademicsManage,
	CapStudentsManage,
	CapEnrollmentManage,
	CapAttendanceManage,
	CapResultsManage,
	CapResultsPublish,
	CapBillingManage,
	CapPaymentsManage,
	CapAuditView,
}

// IsCapability reports whether s is a known capability string.
func IsCapability(s string) bool {
	for _, c := range AllCapabilities {
		if c == s {
			return true
		}
	}
	return false
}
