package handlers

import (
	"strconv"

	"github.com/bluestock/ipo-platform/models"
	"github.com/bluestock/ipo-platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type IPOHandler struct {
	Service *services.IPOService
}

func NewIPOHandler(service *services.IPOService) *IPOHandler {
	return &IPOHandler{Service: service}
}

func parseIDParam(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *IPOHandler) CreateIPO(c *fiber.Ctx) error {
	var req models.CreateIPORequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	ipoID, err := h.Service.CreateIPO(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "IPO created successfully",
		"ipoId":   ipoID,
	})
}

func (h *IPOHandler) ListIPOs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.Service.ListIPOs(c.Context(), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *IPOHandler) GetIPO(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid IPO ID"})
	}

	ipo, err := h.Service.GetIPOByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if ipo == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "IPO not found"})
	}
	return c.JSON(ipo)
}

// GetIPODetail serves the rendered info document as HTML rather than JSON.
func (h *IPOHandler) GetIPODetail(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid IPO ID"})
	}

	html, found, err := h.Service.GetIPODetailsHTML(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "IPO details not found"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

func (h *IPOHandler) SearchIPOs(c *fiber.Ctx) error {
	filters := models.SearchFilters{
		Name:      c.Query("name"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid minPrice"})
		}
		filters.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid maxPrice"})
		}
		filters.MaxPrice = &v
	}

	ipos, err := h.Service.SearchIPOs(c.Context(), filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ipos)
}

func (h *IPOHandler) UpdateIPO(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid IPO ID"})
	}

	var req models.UpdateIPORequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	ipo, err := h.Service.UpdateIPO(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	if ipo == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "IPO not found"})
	}
	return c.JSON(fiber.Map{
		"message": "IPO updated successfully",
		"ipo":     ipo,
	})
}

// UpdateIPOTerms handles the terms-only form update on the legacy route.
func (h *IPOHandler) UpdateIPOTerms(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid IPO ID"})
	}

	var req models.UpdateIPOTermsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	found, err := h.Service.UpdateIPOTerms(c.Context(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "IPO not found"})
	}
	return c.JSON(fiber.Map{"message": "IPO updated successfully"})
}

func (h *IPOHandler) DeleteIPO(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid IPO ID"})
	}

	deleted, err := h.Service.DeleteIPO(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "IPO not found"})
	}
	return c.JSON(fiber.Map{"message": "IPO deleted successfully"})
}

// DeleteIPOLegacy serves the unauthenticated admin-form delete route.
func (h *IPOHandler) DeleteIPOLegacy(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid IPO ID"})
	}

	deleted, err := h.Service.DeleteIPOCheckFirst(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "IPO not found"})
	}
	return c.JSON(fiber.Map{"message": "IPO deleted successfully"})
}

func (h *IPOHandler) ListUpcomingIPOs(c *fiber.Ctx) error {
	ipos, err := h.Service.ListUpcomingIPOs(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ipos)
}
