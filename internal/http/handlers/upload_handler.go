package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rewear/internal/images"
	applog "rewear/internal/log"
)

type UploadHandler struct {
	Images images.Uploader
}

// POST /api/v1/uploads (multipart, field "file")
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.Images == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "image uploads are not configured"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "file")
	}
	defer f.Close()

	publicID := "img_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	url, thumb, err := h.Images.Upload(c.Context(), f, publicID)
	if err != nil {
		return fail(c, "uploads.store", err)
	}
	applog.Audit(c, "uploads.store", map[string]any{"public_id": publicID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url, "thumbnail_url": thumb})
}
