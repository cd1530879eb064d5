package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolku_backend/internals/constants"
	model "schoolku_backend/internals/features/users/rbac/model"
)

func setupDB(t *testing.T) *gorm.DB {
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
	return db
}

func grant(t *testing.T, db *gorm.DB, roleName, permName string) {
	t.Helper()
	var role model.RoleModel
	err := db.Where("role_name = ?", roleName).First(&role).Error
	if err == gorm.ErrRecordNotFound {
		role = model.RoleModel{RoleName: roleName}
		require.NoError(t, db.Create(&role).Error)
	} else {
		require.NoError(t, err)
	}

	var perm model.PermissionModel
	err = db.Where("permission_name = ?", permName).First(&perm).Error
	if err == gorm.ErrRecordNotFound {
		perm = model.PermissionModel{PermissionName: permName}
		require.NoError(t, db.Create(&perm).Error)
	} else {
		require.NoError(t, err)
	}

	require.NoError(t, db.Create(&model.RolePermissionModel{
		RolePermissionRoleID:       role.RoleID,
		RolePermissionPermissionID: perm.PermissionID,
	}).Error)
}

func TestHasCapability(t *testing.T) {
	db := setupDB(t)
	grant(t, db, constants.RoleAccountant, constants.CapBillingManage)
	grant(t, db, constants.RoleAdmin, constants.CapRolesManage)

	cache := NewCapabilityCache(db, time.Minute)

	ok, err := cache.HasCapability([]string{constants.RoleAccountant}, constants.CapBillingManage)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.HasCapability([]string{constants.RoleAccountant}, constants.CapRolesManage)
	require.NoError(t, err)
	assert.False(t, ok)

	// multiple roles: any grant wins
	ok, err = cache.HasCapability([]string{constants.RoleAccountant, constants.RoleAdmin}, constants.CapRolesManage)
	require.NoError(t, err)
	assert.True(t, ok)

	// unknown capability strings never pass
	ok, err = cache.HasCapability([]string{constants.RoleAdmin}, "not.a.capability")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCapabilityCache_ServesStaleUntilInvalidated(t *testing.T) {
	db := setupDB(t)
	grant(t, db, constants.RoleTeacher, constants.CapAttendanceManage)

	cache := NewCapabilityCache(db, time.Hour)

	ok, err := cache.HasCapability([]string{constants.RoleTeacher}, constants.CapAttendanceManage)
	require.NoError(t, err)
	require.True(t, ok)

	// grant lands in the DB but the cache is inside its TTL
	grant(t, db, constants.RoleTeacher, constants.CapResultsManage)
	ok, err = cache.HasCapability([]string{constants.RoleTeacher}, constants.CapResultsManage)
	require.NoError(t, err)
	assert.False(t, ok)

	// explicit invalidation picks the new grant up
	cache.Invalidate()
	ok, err = cache.HasCapability([]string{constants.RoleTeacher}, constants.CapResultsManage)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCapabilityCache_TTLRefresh(t *testing.T) {
	db := setupDB(t)
	grant(t, db, constants.RoleTeacher, constants.CapAttendanceManage)

	cache := NewCapabilityCache(db, 10*time.Millisecond)

	ok, err := cache.HasCapability([]string{constants.RoleTeacher}, constants.CapAttendanceManage)
	require.NoError(t, err)
	require.True(t, ok)

	grant(t, db, constants.RoleTeacher, constants.CapResultsPublish)
	time.Sleep(20 * time.Millisecond)

	ok, err = cache.HasCapability([]string{constants.RoleTeacher}, constants.CapResultsPublish)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCapabilities_Union(t *testing.T) {
	db := setupDB(t)
	grant(t, db, constants.RoleAccountant, constants.CapBillingManage)
	grant(t, db, constants.RoleAccountant, constants.CapPaymentsManage)
	grant(t, db, constants.RoleAdmin, constants.CapBillingManage)

	cache := NewCapabilityCache(db, time.Minute)
	caps, err := cache.Capabilities([]string{constants.RoleAccountant, constants.RoleAdmin})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{constants.CapBillingManage, constants.CapPaymentsManage}, caps)
}
