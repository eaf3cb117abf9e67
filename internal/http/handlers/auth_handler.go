package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return badRequest(c, "email")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return badRequest(c, "name")
	}
	if !validate.Password(in.Password) {
		return badRequest(c, "password")
	}

	p, tok, err := h.Auth.Register(name, email, in.Password)
	if err != nil {
		applog.Security(c, "auth.signup.fail", map[string]any{"email": email})
		return fail(c, "auth.signup", err)
	}
	applog.Audit(c, "auth.signup", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": tok, "profile": p})
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrBadCreds.Error()})
	}

	p, tok, err := h.Auth.Login(email, in.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, "auth.login", err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"token": tok, "profile": p})
}

// GET /api/v1/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"profile": currentProfile(c)})
}

// PUT /api/v1/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	p := currentProfile(c)
	var in struct {
		Name      string `json:"name"`
		Location  string `json:"location"`
		Bio       string `json:"bio"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return badRequest(c, "name")
	}

	updated, err := h.Auth.UpdateProfile(p.ID, name, in.Location, in.Bio, in.AvatarURL)
	if err != nil {
		return fail(c, "me.update", err)
	}
	applog.Audit(c, "me.update", nil)
	return c.JSON(fiber.Map{"profile": updated})
}
