package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/park-seva/helpcenter-service/internal/api/dto"
	"github.com/park-seva/helpcenter-service/internal/auth"
	"github.com/park-seva/helpcenter-service/internal/service"
	apperrors "github.com/park-seva/helpcenter-service/pkg/util"
)

// OperatorHandler manages the operator console endpoints.
type OperatorHandler struct {
	operator      *service.OperatorService
	authenticator *auth.OperatorAuthenticator
}

// NewOperatorHandler constructs handler.
func NewOperatorHandler(operator *service.OperatorService, authenticator *auth.OperatorAuthenticator) *OperatorHandler {
	return &OperatorHandler{operator: operator, authenticator: authenticator}
}

// Login POST /auth/operator/login.
func (h *OperatorHandler) Login(c *fiber.Ctx) error {
	var req dto.OperatorLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	token, expiresAt, err := h.authenticator.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OperatorLoginResponse{Token: token, ExpiresAt: expiresAt}})
}

// ListTickets GET /api/operator/tickets.
func (h *OperatorHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.operator.ListTickets(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.TicketFromDomain(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /api/operator/tickets/:id.
func (h *OperatorHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.operator.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if ticket == nil {
		return apperrors.NewNotFound("ticket", fiber.Map{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// Respond POST /api/operator/tickets/:id/response.
func (h *OperatorHandler) Respond(c *fiber.Ctx) error {
	var req dto.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.operator.Respond(c.Context(), c.Params("id"), req.Response)
	if err != nil {
		if errors.Is(err, service.ErrEmptyResponse) {
			return apperrors.NewValidationError("response required", nil)
		}
		return err
	}
	if ticket == nil {
		// store semantics: mutations on unknown ids are silent no-ops
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// RequestCall POST /api/operator/tickets/:id/call-request.
func (h *OperatorHandler) RequestCall(c *fiber.Ctx) error {
	ticket, err := h.operator.RequestCall(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// Close POST /api/operator/tickets/:id/close.
func (h *OperatorHandler) Close(c *fiber.Ctx) error {
	var req dto.CloseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.Confirm {
		return apperrors.NewValidationError("closing a ticket requires confirmation", nil)
	}

	ticket, err := h.operator.Close(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// AddNote POST /api/operator/tickets/:id/notes.
func (h *OperatorHandler) AddNote(c *fiber.Ctx) error {
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.operator.AddNote(c.Context(), c.Params("id"), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrEmptyResponse) {
			return apperrors.NewValidationError("note text required", nil)
		}
		return err
	}
	if ticket == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}
