package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type AdminHandler struct {
	Admin *services.AdminService
}

// POST /api/v1/admin/items/:id/approve
func (h *AdminHandler) ApproveItem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "item")
	}
	it, err := h.Admin.ApproveItem(currentProfile(c), id)
	if err != nil {
		return fail(c, "admin.items.approve", err)
	}
	applog.Audit(c, "admin.items.approve", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"item": it})
}

// POST /api/v1/admin/items/:id/reject
func (h *AdminHandler) RejectItem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "item")
	}
	it, err := h.Admin.RejectItem(currentProfile(c), id)
	if err != nil {
		return fail(c, "admin.items.reject", err)
	}
	applog.Audit(c, "admin.items.reject", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"item": it})
}

// GET /api/v1/admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.Admin.ListUsers(currentProfile(c))
	if err != nil {
		return fail(c, "admin.users.list", err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GET /api/v1/admin/items
func (h *AdminHandler) Items(c *fiber.Ctx) error {
	items, err := h.Admin.ListItems(currentProfile(c))
	if err != nil {
		return fail(c, "admin.items.list", err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// GET /api/v1/admin/swaps
func (h *AdminHandler) Swaps(c *fiber.Ctx) error {
	reqs, err := h.Admin.ListSwaps(currentProfile(c))
	if err != nil {
		return fail(c, "admin.swaps.list", err)
	}
	return c.JSON(fiber.Map{"requests": reqs})
}

// GET /api/v1/admin/transactions
func (h *AdminHandler) Transactions(c *fiber.Ctx) error {
	txs, err := h.Admin.ListTransactions(currentProfile(c))
	if err != nil {
		return fail(c, "admin.transactions.list", err)
	}
	return c.JSON(fiber.Map{"transactions": txs})
}
