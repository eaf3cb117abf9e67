package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "rewear/internal/log"
	"rewear/internal/services"
	"rewear/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "categories.list", err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// GET /api/v1/items?q=&category=&sort=&page=&page_size=
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q != "" {
		var ok bool
		if q, ok = validate.Q(q); !ok {
			return badRequest(c, "q")
		}
		q = strings.ToLower(q)
	}
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, ok := validate.ID(category); !ok {
			return badRequest(c, "category")
		}
	}
	sort := strings.TrimSpace(c.Query("sort")) // newest|oldest|points-low|points-high|popular

	page, err := h.Catalog.Browse(q, category, sort, c.QueryInt("page", 1), c.QueryInt("page_size", 12))
	if err != nil {
		return fail(c, "items.browse", err)
	}
	return c.JSON(page)
}

// GET /api/v1/items/:id
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "item"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this item is no longer available"})
	}
	it, err := h.Catalog.GetItem(id)
	if err != nil {
		return fail(c, "items.detail", err)
	}
	return c.JSON(fiber.Map{"item": it})
}
