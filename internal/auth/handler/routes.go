package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/auth")

	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh-token", h.Refresh)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)

	auth.Get("/me", h.Authenticate, h.GetMe)
	auth.Put("/me", h.Authenticate, h.UpdateMe)
	auth.Post("/logout", h.Authenticate, h.Logout)
}
