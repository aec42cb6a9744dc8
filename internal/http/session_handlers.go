package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/session"
)

// SessionHandler fronts the two credential forms.
type SessionHandler struct {
	Manager *session.Manager
}

type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *SessionHandler) LoginEmployee(c *fiber.Ctx) error {
	return h.submit(c, domain.RoleEmployee)
}

func (h *SessionHandler) LoginAdmin(c *fiber.Ctx) error {
	return h.submit(c, domain.RoleAdmin)
}

func (h *SessionHandler) submit(c *fiber.Ctx, role domain.Role) error {
	var body credentialsRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	body.Email = strings.TrimSpace(body.Email)

	res, err := h.Manager.SubmitCredentials(userContext(c), role, body.Email, body.Password)
	if errors.Is(err, session.ErrInvalidEmail) {
		// Inline, role-scoped error region; the front end stays on the
		// login view.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"role":  role,
			"error": session.InvalidEmailMessage,
		})
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "login failed: "+err.Error())
	}

	return c.JSON(res)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
