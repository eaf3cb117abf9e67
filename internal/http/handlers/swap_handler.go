package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type SwapHandler struct {
	Swaps *services.SwapService
}

// POST /api/v1/swaps
func (h *SwapHandler) Create(c *fiber.Ctx) error {
	p := currentProfile(c)
	var in struct {
		ItemID  string `json:"item_id"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	itemID, ok := validate.ID(in.ItemID)
	if !ok {
		return badRequest(c, "item_id")
	}
	if len(in.Message) > 500 {
		return badRequest(c, "message")
	}

	req, err := h.Swaps.Create(p.ID, itemID, in.Message)
	if err != nil {
		return fail(c, "swaps.create", err)
	}
	applog.Audit(c, "swaps.create", map[string]any{"request_id": req.ID, "item_id": itemID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": req})
}

// POST /api/v1/swaps/:id/respond
func (h *SwapHandler) Respond(c *fiber.Ctx) error {
	p := currentProfile(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "request")
	}
	var in struct {
		Decision string `json:"decision"` // accepted | rejected
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}

	req, err := h.Swaps.Respond(p.ID, id, in.Decision)
	if err != nil {
		return fail(c, "swaps.respond", err)
	}
	applog.Audit(c, "swaps.respond", map[string]any{"request_id": id, "decision": in.Decision})
	return c.JSON(fiber.Map{"request": req})
}

// GET /api/v1/my/swaps
func (h *SwapHandler) Mine(c *fiber.Ctx) error {
	p := currentProfile(c)
	reqs, err := h.Swaps.MySwaps(p.ID)
	if err != nil {
		return fail(c, "swaps.mine", err)
	}
	return c.JSON(fiber.Map{"requests": reqs})
}
