package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "schoolku_backend/internals/features/finance/payments/controller"
)

// PaymentRoutes mounts payment endpoints on the admin group.
func PaymentRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewPaymentHandler(db)

	p := r.Group("/payments")
	p.Post("/", h.ApplyPayment)
	p.Get("/", h.ListPayments)
	p.Post("/snap-token", h.CreateSnapToken)
}

// PaymentWebhookRoutes mounts the unauthenticated gateway callback.
func PaymentWebhookRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewPaymentHandler(db)
	r.Post("/payments/gateway/callback", h.GatewayCallback)
}
