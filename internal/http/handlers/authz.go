package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rewear/internal/domain"
	applog "rewear/internal/log"
	"rewear/internal/services"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AttachProfile resolves the bearer token, if any, and stashes the profile in
// Locals for handlers and the logger. Invalid tokens fall through anonymous;
// guarded routes reject them below.
func AttachProfile(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := bearerToken(c); tok != "" {
			if p, err := auth.CurrentProfile(tok); err == nil && p != nil {
				c.Locals("profile", p)
				c.Locals("userID", p.ID)
			}
		}
		return c.Next()
	}
}

func currentProfile(c *fiber.Ctx) *domain.Profile {
	p, _ := c.Locals("profile").(*domain.Profile)
	return p
}

func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentProfile(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := currentProfile(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		if p.Role != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": p.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}
