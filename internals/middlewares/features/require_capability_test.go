package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolku_backend/internals/constants"
	model "schoolku_backend/internals/features/users/rbac/model"
	rbacsvc "schoolku_backend/internals/features/users/rbac/service"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

func gateApp(t *testing.T, capability string, roles []string) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.RoleModel{},
		&model.PermissionModel{},
		&model.RolePermissionModel{},
	))

	cache := rbacsvc.NewCapabilityCache(db, rbacsvc.DefaultTTL)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRoles, roles)
		return c.Next()
	})
	app.Get("/guarded", RequireCapability(cache, capability), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, db
}

func grantCap(t *testing.T, db *gorm.DB, roleName, capName string) {
	t.Helper()
	role := model.RoleModel{RoleName: roleName}
	require.NoError(t, db.Create(&role).Error)
	perm := model.PermissionModel{PermissionName: capName}
	require.NoError(t, db.Create(&perm).Error)
	require.NoError(t, db.Create(&model.RolePermissionModel{
		RolePermissionRoleID:       role.RoleID,
		RolePermissionPermissionID: perm.PermissionID,
	}).Error)
}

func TestRequireCapability_Allows(t *testing.T) {
	app, db := gateApp(t, constants.CapBillingManage, []string{constants.RoleAccountant})
	grantCap(t, db, constants.RoleAccountant, constants.CapBillingManage)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireCapability_DeniesMissingGrant(t *testing.T) {
	app, db := gateApp(t, constants.CapBillingManage, []string{constants.RoleTeacher})
	grantCap(t, db, constants.RoleTeacher, constants.CapAttendanceManage)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireCapability_DeniesNoRoles(t *testing.T) {
	app, _ := gateApp(t, constants.CapBillingManage, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
