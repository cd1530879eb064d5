package service

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
)

// CapabilityCache holds the role → capability mapping loaded from the
// roles/permissions tables. It is read on every guarded request, so the
// mapping is cached in memory and refreshed on a TTL or when Invalidate
// is called after a role/permission mutation.
type CapabilityCache struct {
	db  *gorm.DB
	ttl time.Duration

	mu       sync.RWMutex
	byRole   map[string]map[string]struct{}
	loadedAt time.Time
}

const DefaultTTL = 5 * time.Minute

func NewCapabilityCache(db *gorm.DB, ttl time.Duration) *CapabilityCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CapabilityCache{db: db, ttl: ttl}
}

// HasCapability reports whether any of the roles grants the capability.
// The mapping is reloaded lazily when the TTL has elapsed.
func (c *CapabilityCache) HasCapability(roles []string, capability string) (bool, error) {
	if !constants.IsCapability(capability) {
		return false, nil
	}
	m, err := c.mapping()
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if caps, ok := m[r]; ok {
			if _, ok := caps[capability]; ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// Capabilities returns the capability set granted by the given roles.
func (c *CapabilityCache) Capabilities(roles []string) ([]string, error) {
	m, err := c.mapping()
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []string
	for _, r := range roles {
		for name := range m[r] {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				out = append(out, name)
			}
		}
	}
	return out, nil
}

// Invalidate drops the cached mapping. Call after mutating roles,
// permissions, or role_permissions.
func (c *CapabilityCache) Invalidate() {
	c.mu.Lock()
	c.byRole = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

func (c *CapabilityCache) mapping() (map[string]map[string]struct{}, error) {
	c.mu.RLock()
	if c.byRole != nil && time.Since(c.loadedAt) < c.ttl {
		m := c.byRole
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// another goroutine may have refreshed while we waited
	if c.byRole != nil && time.Since(c.loadedAt) < c.ttl {
		return c.byRole, nil
	}

	type row struct {
		RoleName       string `gorm:"column:role_name"`
		PermissionName string `gorm:"column:permission_name"`
	}
	var rows []row
	if err := c.db.
		Table("roles").
		Select("roles.role_name, permissions.permission_name").
		Joins("JOIN role_permissions ON role_permissions.role_permission_role_id = roles.role_id").
		Joins("JOIN permissions ON permissions.permission_id = role_permissions.role_permission_permission_id").
		Where("roles.role_deleted_at IS NULL").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	m := make(map[string]map[string]struct{})
	for _, r := range rows {
		// permissions that are not known capabilities are ignored
		if !constants.IsCapability(r.PermissionName) {
			continue
		}
		caps, ok := m[r.RoleName]
		if !ok {
			caps = make(map[string]struct{})
			m[r.RoleName] = caps
		}
		caps[r.PermissionName] = struct{}{}
	}

	c.byRole = m
	c.loadedAt = time.Now()
	return m, nil
}
