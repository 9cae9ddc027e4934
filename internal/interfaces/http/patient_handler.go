package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/application/usecase"
)

// PatientHandler handles patient and visit requests (protected).
type PatientHandler struct {
	patients *usecase.PatientUseCase
	visits   *usecase.VisitUseCase
}

// NewPatientHandler constructs the handler.
func NewPatientHandler(patients *usecase.PatientUseCase, visits *usecase.VisitUseCase) *PatientHandler {
	return &PatientHandler{patients: patients, visits: visits}
}

// Create registers a patient.
// POST /api/patients
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.patients.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetByID fetches one patient.
// GET /api/patients/:id
func (h *PatientHandler) GetByID(c *fiber.Ctx) error {
	res, err := h.patients.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// List fetches a page of patients.
// GET /api/patients
func (h *PatientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	res, err := h.patients.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Update applies a partial patient update.
// PUT /api/patients/:id
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePatientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.patients.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Delete removes a patient.
// DELETE /api/patients/:id
func (h *PatientHandler) Delete(c *fiber.Ctx) error {
	if err := h.patients.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateVisit records a visit.
// POST /api/visits
func (h *PatientHandler) CreateVisit(c *fiber.Ctx) error {
	var in dto.CreateVisitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.visits.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetVisit fetches one visit.
// GET /api/visits/:id
func (h *PatientHandler) GetVisit(c *fiber.Ctx) error {
	res, err := h.visits.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ListVisits fetches a patient's visit history.
// GET /api/patients/:id/visits
func (h *PatientHandler) ListVisits(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	res, err := h.visits.ListByPatient(c.Context(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
