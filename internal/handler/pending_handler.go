package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go-barcode-archive/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PendingHandler struct {
	service service.EntryService
}

func NewPendingHandler(s service.EntryService) *PendingHandler {
	return &PendingHandler{service: s}
}

// GetPending lists the queue in upload order
// GET /api/v1/pending
func (h *PendingHandler) GetPending(c *fiber.Ctx) error {
	items, err := h.service.ListPending()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// BulkUpload ingests multiple images into the pending queue
// POST /api/v1/pending/bulk (multipart, field "images")
func (h *PendingHandler) BulkUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid multipart form"})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No images uploaded"})
	}

	// Encode sequentially so queue order matches file-selection order.
	payloads := make([]string, 0, len(files))
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
		}
		payloads = append(payloads, encodeImagePayload(data))
	}

	items, err := h.service.BulkUpload(payloads)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Images queued", "data": items})
}

// encodeImagePayload wraps raw image bytes into the opaque data-URL form
// the archive stores.
func encodeImagePayload(data []byte) string {
	mime := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// PromotePending assigns a code to a queued image, creating an entry
// POST /api/v1/pending/:id/promote
func (h *PendingHandler) PromotePending(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pending ID"})
	}

	var req service.PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.PromotePending(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrPendingNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Entry created", "data": entry})
}

// DiscardPending removes one queued image
// DELETE /api/v1/pending/:id
func (h *PendingHandler) DiscardPending(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pending ID"})
	}

	if err := h.service.DiscardPending(id); err != nil {
		if errors.Is(err, service.ErrPendingNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Pending item discarded"})
}

// DiscardAllPending empties the queue
// DELETE /api/v1/pending
func (h *PendingHandler) DiscardAllPending(c *fiber.Ctx) error {
	if err := h.service.DiscardAllPending(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Pending queue cleared"})
}
