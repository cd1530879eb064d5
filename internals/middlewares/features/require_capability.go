package middleware

import (
	"github.com/gofiber/fiber/v2"

	rbacsvc "schoolku_backend/internals/features/users/rbac/service"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// RequireCapability gates a route group on a capability string. Roles come
// from the verified JWT; the grant check goes through the capability cache.
func RequireCapability(cache *rbacsvc.CapabilityCache, capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := helperAuth.GetRolesFromContext(c)
		if len(roles) == 0 {
			return fiber.NewError(fiber.StatusForbidden, "no roles on token")
		}
		ok, err := cache.HasCapability(roles, capability)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "capability check failed")
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "missing capability: "+capability)
		}
		return c.Next()
	}
}
