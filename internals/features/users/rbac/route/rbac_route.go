package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/users/rbac/controller"
	service "schoolku_backend/internals/features/users/rbac/service"
)

// RbacRoutes mounts role, capability and assignment management. The
// cache instance is shared with the capability gate middleware so
// mutations invalidate what the gate reads.
func RbacRoutes(r fiber.Router, db *gorm.DB, cache *service.CapabilityCache) {
	h := controller.NewRbacHandler(db, cache)

	roles := r.Group("/roles")
	roles.Post("/", h.CreateRole)
	roles.Get("/", h.ListRoles)
	roles.Patch("/:id", h.UpdateRole)
	roles.Delete("/:id", h.DeleteRole)
	roles.Put("/:id/capabilities", h.GrantCapabilities)

	r.Get("/capabilities", h.ListCapabilities)
	r.Put("/users/:id/roles", h.AssignRoles)
}
