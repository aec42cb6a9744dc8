package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/frederic5962/bill-app/internal/bills"
	"github.com/frederic5962/bill-app/internal/newbill"
)

// BillsHandler fronts the bill list view and the new-bill form.
type BillsHandler struct {
	Service  *bills.Service
	Workflow *newbill.Workflow
}

func NewBillsHandler(service *bills.Service, workflow *newbill.Workflow) *BillsHandler {
	return &BillsHandler{Service: service, Workflow: workflow}
}

// List returns the display-ready bill collection. With no remote
// store configured the body is null: nothing to render.
func (h *BillsHandler) List(c *fiber.Ctx) error {
	items, err := h.Service.List(userContext(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list bills: "+err.Error())
	}
	return c.JSON(items)
}

// UploadFile handles the receipt selection of the new-bill form: the
// first phase of the two-step persistence.
func (h *BillsHandler) UploadFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable file")
	}

	err = h.Workflow.HandleFile(userContext(c), fh.Filename, fh.Header.Get("Content-Type"), data)
	if errors.Is(err, newbill.ErrFileType) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"alert":     newbill.FileTypeAlert,
			"clearFile": true,
		})
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "upload failed")
	}

	return c.JSON(fiber.Map{"fileName": fh.Filename})
}

// Submit handles the final submission of the new-bill form.
func (h *BillsHandler) Submit(c *fiber.Ctx) error {
	var draft newbill.Draft
	if err := c.BodyParser(&draft); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	res, err := h.Workflow.Submit(userContext(c), draft)
	switch {
	case errors.Is(err, newbill.ErrMissingFields):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"alert": newbill.MissingFieldsAlert})
	case errors.Is(err, newbill.ErrMissingReceipt):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"alert": newbill.MissingReceiptAlert})
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "submit failed")
	}

	if res == nil {
		// Update failed or no remote store: the user stays on the form.
		return c.JSON(fiber.Map{"redirect": ""})
	}
	return c.JSON(res)
}
