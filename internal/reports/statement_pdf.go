package reports

import (
	"bytes"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"

	"github.com/frederic5962/bill-app/internal/bills"
	"github.com/frederic5962/bill-app/internal/money"
)

// Handler exports the aggregated bill list for the admin dashboard.
type Handler struct {
	Bills *bills.Service
}

func NewHandler(bills *bills.Service) *Handler {
	return &Handler{Bills: bills}
}

func (h *Handler) StatementPDF(c *fiber.Ctx) error {
	ctx := c.UserContext()
	items, err := h.Bills.List(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed statement: "+err.Error())
	}

	var pending, accepted, refused int
	for _, b := range items {
		switch b.Status {
		case "En attente":
			pending++
		case "Accepté":
			accepted++
		case "Refusé":
			refused++
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 48)
	pdf.SetTextColor(235, 235, 235)
	pdf.Text(35, 140, "BILLED")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Notes de frais")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr("Édité le "+time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "En attente", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, tr("Accepté"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, tr("Refusé"), "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, strconv.Itoa(pending), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, strconv.Itoa(accepted), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, strconv.Itoa(refused), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)

	colW := []float64{28, 34, 72, 26, 26}
	header := func() {
		pdf.CellFormat(colW[0], 8, "DATE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 8, "TYPE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[2], 8, "NOM", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[3], 8, "MONTANT", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[4], 8, "STATUT", "1", 1, "C", true, 0, "")
	}
	header()

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)

	maxRows := 200
	for i, b := range items {
		if i >= maxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, tr("…tronqué (trop de lignes)"), "1", 1, "C", false, 0, "")
			break
		}

		if pdf.GetY() > 270 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetFillColor(245, 245, 245)
			header()
			pdf.SetFont("Helvetica", "", 9)
		}

		pdf.CellFormat(colW[0], 8, tr(b.Date), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, tr(b.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 8, tr(trimTo(b.Name, 60)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 8, tr(money.AmountString(b.Amount)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 8, tr(b.Status), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render pdf")
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="notes-de-frais.pdf"`)
	return c.Send(buf.Bytes())
}

// trimTo truncates on rune boundaries so accented names are never
// split mid-character.
func trimTo(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
