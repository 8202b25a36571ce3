package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sucree/internal/blob"
	applog "sucree/internal/log"
)

type UploadHandler struct {
	Blobs blob.Store
}

type uploadForm struct {
	Image  string `json:"image"`
	Folder string `json:"folder"`
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	var f uploadForm
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid body")
	}
	url, err := h.Blobs.Save(c.UserContext(), f.Image, f.Folder)
	if err != nil {
		return writeError(c, "upload.save", "Internal Server Error", err)
	}
	applog.Audit(c, "upload.save", map[string]any{"url": url})
	return c.JSON(fiber.Map{"url": url})
}
