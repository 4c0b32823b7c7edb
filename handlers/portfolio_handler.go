package handlers

import (
	"strconv"

	"github.com/bluestock/ipo-platform/services"
	"github.com/gofiber/fiber/v2"
)

type PortfolioHandler struct {
	Service *services.PortfolioService
}

func NewPortfolioHandler(service *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{Service: service}
}

func parseUserIDParam(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("userId"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *PortfolioHandler) GetWatchlist(c *fiber.Ctx) error {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	entries, err := h.Service.ListWatchlist(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

func (h *PortfolioHandler) GetTransactions(c *fiber.Ctx) error {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
	}

	txs, err := h.Service.ListTransactions(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txs)
}

func (h *PortfolioHandler) GetNotifications(c *fiber.Ctx) error {
	notes, err := h.Service.ListNotifications(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notes)
}
