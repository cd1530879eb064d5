package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	controller "schoolku_backend/internals/features/users/user/controller"
	service "schoolku_backend/internals/features/users/user/service"
)

// AuthRoutes mounts the public login endpoints. LoginRateLimiter is
// applied by the caller.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewAuthHandler(db, service.NewTokenService(db, configs.JWTSecret, configs.JWTRefreshSecret))
	r.Post("/", h.Login)
	r.Post("/refresh", h.Refresh)
}

// UserSelfRoutes mounts the authenticated self-service endpoints.
func UserSelfRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewAuthHandler(db, service.NewTokenService(db, configs.JWTSecret, configs.JWTRefreshSecret))
	r.Get("/me", h.Me)
	r.Post("/me/change-password", h.ChangePassword)
}

// UserAdminRoutes mounts user management.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := &controller.UserHandler{DB: db}
	users := r.Group("/users")
	users.Post("/", h.CreateUser)
	users.Get("/", h.ListUsers)
	users.Patch("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)
}
