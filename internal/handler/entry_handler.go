package handler

import (
	"errors"

	"go-barcode-archive/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EntryHandler struct {
	service service.EntryService
}

func NewEntryHandler(s service.EntryService) *EntryHandler {
	return &EntryHandler{service: s}
}

// Helper to get user info from JWT context (set by auth middleware)
func getUserRole(c *fiber.Ctx) string {
	role := c.Locals("user_role")
	if role == nil {
		return ""
	}
	return role.(string)
}

// GetEntries lists archive entries with optional search and sort
// GET /api/v1/entries?search=&sort=&order=
func (h *EntryHandler) GetEntries(c *fiber.Ctx) error {
	opts := service.QueryOptions{
		Search:     c.Query("search"),
		Sort:       c.Query("sort", service.SortByCreated),
		Descending: c.Query("order", "desc") == "desc",
	}

	entries, err := h.service.ListEntries(opts)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// GetEntry returns one entry
// GET /api/v1/entries/:id
func (h *EntryHandler) GetEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	entry, err := h.service.GetEntry(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	}
	return c.JSON(entry)
}

// CreateEntry saves a new archive record
// POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c *fiber.Ctx) error {
	var req service.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.CreateEntry(&req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Entry created", "data": entry})
}

// DeleteEntry removes an entry (admin only)
// DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	if err := h.service.DeleteEntry(id, getUserRole(c)); err != nil {
		if errors.Is(err, service.ErrAdminRequired) {
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrEntryNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Entry deleted"})
}
