package handler

import (
	"errors"

	"go-barcode-archive/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GetCatalog lists the active master data
// GET /api/v1/catalog
func (h *CatalogHandler) GetCatalog(c *fiber.Ctx) error {
	rows, err := h.service.GetCatalog()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(rows)
}

// ImportCatalog replaces the master data from an uploaded spreadsheet
// POST /api/v1/catalog/import (multipart, field "file")
func (h *CatalogHandler) ImportCatalog(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Spreadsheet file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	imported, reconciled, err := h.service.ImportWorkbook(file)
	if err != nil {
		if errors.Is(err, service.ErrUnreadableWorkbook) ||
			errors.Is(err, service.ErrEmptyWorkbook) ||
			errors.Is(err, service.ErrNoValidRows) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":    "Catalog imported",
		"imported":   imported,
		"reconciled": reconciled,
	})
}

// ClearCatalog resets the master data (admin only)
// DELETE /api/v1/catalog
func (h *CatalogHandler) ClearCatalog(c *fiber.Ctx) error {
	if err := h.service.Clear(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Catalog cleared"})
}
