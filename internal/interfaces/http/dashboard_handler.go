package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-api/internal/application/analytics"
	"github.com/clinicore/clinic-api/internal/application/dto"
)

// DashboardHandler handles revenue dashboard requests (protected).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary fetches the aggregate figures for a date range (from/to as
// YYYY-MM-DD; defaults to the current month).
// GET /api/dashboard/summary
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid from date"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid to date"})
	}
	res, err := h.uc.Summary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// MonthlyRevenue fetches the twelve month buckets of a year (defaults to the
// current year).
// GET /api/dashboard/monthly
func (h *DashboardHandler) MonthlyRevenue(c *fiber.Ctx) error {
	year := time.Now().Year()
	if q := c.Query("year"); q != "" {
		var err error
		year, err = strconv.Atoi(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid year"})
		}
	}
	res, err := h.uc.MonthlyRevenue(c.Context(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
