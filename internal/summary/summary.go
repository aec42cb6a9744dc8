package summary

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/frederic5962/bill-app/internal/bills"
)

// Summary counts the fetched bills per display status, for the admin
// dashboard header.
type Summary struct {
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Refused  int `json:"refused"`
	Total    int `json:"total"`
}

type Handler struct {
	Bills *bills.Service
}

func (h Handler) GetSummary(c *fiber.Ctx) error {
	items, err := h.Bills.List(userContext(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch summary: "+err.Error())
	}

	var s Summary
	for _, b := range items {
		switch b.Status {
		case "En attente":
			s.Pending++
		case "Accepté":
			s.Accepted++
		case "Refusé":
			s.Refused++
		}
	}
	s.Total = len(items)

	return c.JSON(s)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
