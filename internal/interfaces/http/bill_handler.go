package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/application/dto"
)

// BillHandler handles billing requests (protected).
type BillHandler struct {
	bills  *billing.BillUseCase
	items  *billing.LineItemUseCase
	sender *billing.SendInvoiceUseCase
	pdf    *billing.PDFUseCase
}

// NewBillHandler constructs the handler.
func NewBillHandler(
	bills *billing.BillUseCase,
	items *billing.LineItemUseCase,
	sender *billing.SendInvoiceUseCase,
	pdf *billing.PDFUseCase,
) *BillHandler {
	return &BillHandler{bills: bills, items: items, sender: sender, pdf: pdf}
}

// Create starts a bill for a visit.
// POST /api/bills
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.bills.CreateForVisit(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetByID fetches a bill with its lines.
// GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.bills.GetBill(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// List fetches bill headers, newest first.
// GET /api/bills
func (h *BillHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	res, err := h.bills.ListBills(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ListByPatient fetches one patient's bills.
// GET /api/patients/:id/bills
func (h *BillHandler) ListByPatient(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	res, err := h.bills.ListByPatient(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// UpdateStatus changes the payment status (including cancellation).
// PUT /api/bills/:id/status
func (h *BillHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBillStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.bills.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// AddItems adds lines to a bill, reserving stock. Lines that would oversell
// are reported in the result, not failed.
// POST /api/bills/:id/items
func (h *BillHandler) AddItems(c *fiber.Ctx) error {
	var in dto.AddBillItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.items.AddItems(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ListItems fetches a bill's lines in creation order.
// GET /api/bills/:id/items
func (h *BillHandler) ListItems(c *fiber.Ctx) error {
	res, err := h.items.ListItems(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// RemoveItem deletes a line and releases its stock.
// DELETE /api/bills/:id/items/:itemID
func (h *BillHandler) RemoveItem(c *fiber.Ctx) error {
	totals, err := h.items.RemoveItem(c.Context(), c.Params("id"), c.Params("itemID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(totals)
}

// Recalculate recomputes and persists the totals from the stored lines.
// POST /api/bills/:id/recalculate
func (h *BillHandler) Recalculate(c *fiber.Ctx) error {
	totals, err := h.items.Recalculate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(totals)
}

// Send renders the invoice and delivers it (SMS first, email fallback).
// POST /api/bills/:id/send
func (h *BillHandler) Send(c *fiber.Ctx) error {
	res, err := h.sender.Send(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ListAttempts fetches the delivery audit trail of a bill.
// GET /api/bills/:id/attempts
func (h *BillHandler) ListAttempts(c *fiber.Ctx) error {
	res, err := h.sender.ListAttempts(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// DownloadPDF renders and streams the invoice PDF.
// GET /api/bills/:id/pdf
func (h *BillHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
