package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/pkg/constant"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/v1/register", h.Register)
	app.Post("/api/v1/login", h.Login)
	app.Post("/api/v1/refresh", h.Refresh)

	// Admin-only endpoints
	admin := app.Group("/api/v1/admin", h.RequireRole(constant.AdminRoleName))
	admin.Get("/user/:id/security", h.GetSecurityStatus)
	admin.Post("/user/:id/unlock", h.UnlockAccount)
	admin.Post("/user/:id/force-reset", h.ForcePasswordReset)
	admin.Delete("/user/:id/force-reset", h.ClearForcePasswordReset)
	admin.Get("/audit-logs", h.GetAuditLogs)
}
