package constants

// Role names seeded at install time.
const (
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleAccountant = "accountant"
	RoleStudent    = "student"
)

var AllRoles = []string{
	RoleAdmin,
	RoleTeacher,
	RoleAccountant,
	RoleStudent,
}

var StaffRoles = []string{
	RoleAdmin,
	RoleTeacher,
	RoleAccountant,
}
