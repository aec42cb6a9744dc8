package router

import (
	"github.com/gofiber/fiber/v2"

	handlers "github.com/frederic5962/bill-app/internal/http"
	"github.com/frederic5962/bill-app/internal/reports"
	"github.com/frederic5962/bill-app/internal/summary"
)

type Router struct {
	SessionHandler *handlers.SessionHandler
	BillsHandler   *handlers.BillsHandler
	SummaryHandler *summary.Handler
	ReportsHandler *reports.Handler
	SessionMW      fiber.Handler
	AdminMW        fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.SessionHandler != nil {
		app.Post("/api/login/employee", RateLimitAuth(), r.SessionHandler.LoginEmployee)
		app.Post("/api/login/admin", RateLimitAuth(), r.SessionHandler.LoginAdmin)
	}

	if r.BillsHandler != nil {
		if r.SessionMW != nil {
			app.Get("/api/bills", r.SessionMW, r.BillsHandler.List)
			app.Post("/api/bills/file", r.SessionMW, RateLimitUpload(), r.BillsHandler.UploadFile)
			app.Post("/api/bills", r.SessionMW, r.BillsHandler.Submit)
		} else {
			app.Get("/api/bills", r.BillsHandler.List)
			app.Post("/api/bills/file", RateLimitUpload(), r.BillsHandler.UploadFile)
			app.Post("/api/bills", r.BillsHandler.Submit)
		}
	}

	if r.SummaryHandler != nil && r.SessionMW != nil && r.AdminMW != nil {
		app.Get("/api/dashboard/summary", r.SessionMW, r.AdminMW, r.SummaryHandler.GetSummary)
	}

	if r.ReportsHandler != nil && r.SessionMW != nil && r.AdminMW != nil {
		app.Get("/api/dashboard/export.pdf", r.SessionMW, r.AdminMW, r.ReportsHandler.StatementPDF)
	}
}
