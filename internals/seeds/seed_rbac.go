package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	rbacmodel "schoolku_backend/internals/features/users/rbac/model"
	usermodel "schoolku_backend/internals/features/users/user/model"
)

// defaultGrants maps each built-in role onto its capability set.
var defaultGrants = map[string][]string{
	constants.RoleAdmin: constants.AllCapabilities,
	constants.RoleTeacher: {
		constants.CapAttendanceManage,
		constants.CapResultsManage,
	},
	constants.RoleAccountant: {
		constants.CapBillingManage,
		constants.CapPaymentsManage,
	},
	constants.RoleStudent: {},
}

// SeedRBAC creates the built-in roles, the capability permission rows and
// the default grants. Safe to run repeatedly.
func SeedRBAC(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		perms := make(map[string]rbacmodel.PermissionModel, len(constants.AllCapabilities))
		for _, name := range constants.AllCapabilities {
			var perm rbacmodel.PermissionModel
			if err := tx.Where("permission_name = ?", name).
				FirstOrCreate(&perm, rbacmodel.PermissionModel{PermissionName: name}).Error; err != nil {
				return err
			}
			perms[name] = perm
		}

		for roleName, caps := range defaultGrants {
			var role rbacmodel.RoleModel
			if err := tx.Where("role_name = ?", roleName).
				FirstOrCreate(&role, rbacmodel.RoleModel{RoleName: roleName}).Error; err != nil {
				return err
			}
			for _, capName := range caps {
				rp := rbacmodel.RolePermissionModel{
					RolePermissionRoleID:       role.RoleID,
					RolePermissionPermissionID: perms[capName].PermissionID,
				}
				if err := tx.Where(&rp).FirstOrCreate(&rp).Error; err != nil {
					return err
				}
			}
		}

		log.Println("✅ RBAC seed complete")
		return nil
	})
}

// SeedAdminUser creates the bootstrap admin account and assigns it the
// admin role. No-op when the email already exists.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&usermodel.UserModel{}).
			Where("user_email = ?", email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := usermodel.UserModel{
			UserName:     "Administrator",
			UserEmail:    email,
			UserPassword: string(hash),
			UserIsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		var role rbacmodel.RoleModel
		if err := tx.Where("role_name = ?", constants.RoleAdmin).
			First(&role).Error; err != nil {
			return err
		}
		if err := tx.Create(&rbacmodel.UserRoleModel{
			UserRoleUserID: user.UserID,
			UserRoleRoleID: role.RoleID,
		}).Error; err != nil {
			return err
		}

		log.Printf("✅ Admin user seeded: %s", email)
		return nil
	})
}
