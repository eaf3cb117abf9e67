package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type EconomyHandler struct {
	Economy *services.EconomyService
}

// POST /api/v1/items/:id/redeem
func (h *EconomyHandler) Redeem(c *fiber.Ctx) error {
	p := currentProfile(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "item")
	}

	tx, err := h.Economy.Redeem(p.ID, id)
	if err != nil {
		applog.Security(c, "redeem.fail", map[string]any{"item_id": id, "error": err.Error()})
		return fail(c, "redeem", err)
	}
	applog.Audit(c, "redeem.complete", map[string]any{
		"item_id": id, "transaction_id": tx.ID, "points": tx.Points,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction": tx})
}

// GET /api/v1/my/transactions
func (h *EconomyHandler) Mine(c *fiber.Ctx) error {
	p := currentProfile(c)
	txs, err := h.Economy.MyTransactions(p.ID)
	if err != nil {
		return fail(c, "transactions.mine", err)
	}
	return c.JSON(fiber.Map{"transactions": txs})
}
