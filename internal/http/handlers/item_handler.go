package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type ItemHandler struct {
	Listings *services.ListingService
}

const maxItemImages = 8

func parseListing(c *fiber.Ctx) (services.ListingInput, string, bool) {
	var in services.ListingInput
	if err := c.BodyParser(&in); err != nil {
		return in, "body", false
	}
	title, ok := validate.Title(in.Title)
	if !ok {
		return in, "title", false
	}
	in.Title = title
	if _, ok := validate.ID(in.CategoryID); !ok {
		return in, "category_id", false
	}
	if _, ok := validate.Size(in.Size); !ok {
		return in, "size", false
	}
	if _, ok := validate.Condition(in.Condition); !ok {
		return in, "condition", false
	}
	if _, ok := validate.Points(strconv.Itoa(in.Points)); !ok {
		return in, "points", false
	}
	if len(in.Images) == 0 || len(in.Images) > maxItemImages {
		return in, "images", false
	}
	in.Tags = validate.Tags(strings.Join(in.Tags, ","))
	return in, "", true
}

// POST /api/v1/items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	p := currentProfile(c)
	in, field, ok := parseListing(c)
	if !ok {
		return badRequest(c, field)
	}

	it, err := h.Listings.Create(p.ID, in)
	if err != nil {
		return fail(c, "items.create", err)
	}
	applog.Audit(c, "items.create", map[string]any{"item_id": it.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": it})
}

// PUT /api/v1/items/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	p := currentProfile(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "item")
	}
	in, field, ok := parseListing(c)
	if !ok {
		return badRequest(c, field)
	}

	it, err := h.Listings.Update(p.ID, id, in)
	if err != nil {
		return fail(c, "items.update", err)
	}
	applog.Audit(c, "items.update", map[string]any{"item_id": id})
	return c.JSON(fiber.Map{"item": it})
}

// DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	p := currentProfile(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "item")
	}
	if err := h.Listings.Delete(p.ID, id); err != nil {
		return fail(c, "items.delete", err)
	}
	applog.Audit(c, "items.delete", map[string]any{"item_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/my/items
func (h *ItemHandler) Mine(c *fiber.Ctx) error {
	p := currentProfile(c)
	items, err := h.Listings.MyItems(p.ID)
	if err != nil {
		return fail(c, "items.mine", err)
	}
	return c.JSON(fiber.Map{"items": items})
}
