package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/dto"
)

// GetSecurityStatus serves the admin/self-service view of an account's
// protection state.
func (h *AuthHandler) GetSecurityStatus(c *fiber.Ctx) error {
	userID := c.Params("id")

	status, err := h.lockoutService.GetSecurityStatus(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(status)
}

func (h *AuthHandler) UnlockAccount(c *fiber.Ctx) error {
	userID := c.Params("id")
	adminID, _ := c.Locals(localUserID).(string)

	if err := h.lockoutService.AdminUnlock(c.Context(), userID, adminID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ForcePasswordReset(c *fiber.Ctx) error {
	userID := c.Params("id")

	var input dto.ForceResetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if input.Reason == "" {
		input.Reason = "reset required by administrator"
	}

	if err := h.lockoutService.ForcePasswordReset(c.Context(), userID, input.Reason); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) ClearForcePasswordReset(c *fiber.Ctx) error {
	userID := c.Params("id")

	if err := h.lockoutService.ClearForcePasswordReset(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetAuditLogs serves a filtered page of the audit trail.
func (h *AuthHandler) GetAuditLogs(c *fiber.Ctx) error {
	filter := domain.AuditFilter{
		UserID:    c.Query("user_id"),
		IPAddress: c.Query("ip"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}

	if raw := c.Query("event"); raw != "" {
		event := domain.AuditEvent(raw)
		if !event.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown event kind"})
		}
		filter.Event = event
	}

	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid since timestamp"})
		}
		filter.Since = t
	}
	if raw := c.Query("until"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid until timestamp"})
		}
		filter.Until = t
	}

	entries, err := h.lockoutService.GetAuditLogs(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"entries": entries})
}
