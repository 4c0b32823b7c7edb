package handlers

import (
	"time"

	"github.com/bluestock/ipo-platform/models"
	"github.com/gofiber/fiber/v2"
)

// DemoHandler serves static datasets backing UI screens that have no live
// data source yet.
type DemoHandler struct{}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

func (h *DemoHandler) GetSubscriptions(c *fiber.Ctx) error {
	return c.JSON([]models.SubscriptionDemo{
		{ID: 1, Company: "Nova Agritech", Price: 41, LotSize: 365, Subscription: 109, ClosingDate: "2024-01-31"},
		{ID: 2, Company: "EPACK Durable", Price: 230, LotSize: 65, Subscription: 15, ClosingDate: "2024-01-23"},
		{ID: 3, Company: "Medi Assist Healthcare", Price: 418, LotSize: 35, Subscription: 16, ClosingDate: "2024-01-17"},
	})
}

func (h *DemoHandler) GetAllotments(c *fiber.Ctx) error {
	allottedOn := time.Date(2024, 2, 2, 10, 30, 0, 0, time.UTC)
	return c.JSON([]models.AllotmentDemo{
		{ApplicationID: "APP-2024-0001", InvestorName: "R. Sharma", CompanyName: "Nova Agritech", AppliedShares: 365, AllottedShares: 365, Status: "Allotted", AllottedOn: allottedOn},
		{ApplicationID: "APP-2024-0002", InvestorName: "K. Patel", CompanyName: "Nova Agritech", AppliedShares: 730, AllottedShares: 0, Status: "Not Allotted", AllottedOn: allottedOn},
		{ApplicationID: "APP-2024-0003", InvestorName: "S. Iyer", CompanyName: "EPACK Durable", AppliedShares: 130, AllottedShares: 65, Status: "Partially Allotted", AllottedOn: allottedOn},
	})
}

func (h *DemoHandler) GetDashboardSummary(c *fiber.Ctx) error {
	return c.JSON(models.DashboardSummary{
		TotalIPO:  30,
		IPOInLoss: 9,
		IPOInGain: 20,
	})
}
