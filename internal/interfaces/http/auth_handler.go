package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-api/internal/application/auth"
	"github.com/clinicore/clinic-api/internal/application/dto"
)

// AuthHandler handles authentication requests (public).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login authenticates a staff account and returns a JWT.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	res, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
