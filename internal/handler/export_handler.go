package handler

import (
	"fmt"
	"time"

	"go-barcode-archive/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(s service.ExportService) *ExportHandler {
	return &ExportHandler{service: s}
}

// ExportRequest optionally scopes an export to selected entry ids.
type ExportRequest struct {
	IDs []string `json:"ids"`
}

func (r *ExportRequest) parseIDs() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.IDs))
	for _, raw := range r.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid entry ID: %s", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ExportXLSX streams a spreadsheet of selected (or all) entries
// POST /api/v1/exports/xlsx
func (h *ExportHandler) ExportXLSX(c *fiber.Ctx) error {
	var req ExportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}
	}

	ids, err := req.parseIDs()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.service.GenerateWorkbook(ids)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate spreadsheet"})
	}

	filename := fmt.Sprintf("archive_export_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// ExportPDF streams the printable report over the same record set
// POST /api/v1/exports/pdf
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	var req ExportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}
	}

	ids, err := req.parseIDs()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.service.GeneratePDF(ids)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate PDF"})
	}

	filename := fmt.Sprintf("archive_report_%s.pdf", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
