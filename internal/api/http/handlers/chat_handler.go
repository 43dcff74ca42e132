package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/park-seva/helpcenter-service/internal/api/dto"
	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/service"
	apperrors "github.com/park-seva/helpcenter-service/pkg/util"
)

// ChatHandler manages the help-center conversation endpoints.
type ChatHandler struct {
	conversation *service.ConversationService
}

// NewChatHandler constructs handler.
func NewChatHandler(conversation *service.ConversationService) *ChatHandler {
	return &ChatHandler{conversation: conversation}
}

// SendMessage POST /api/helpcenter/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.conversation.SendMessage(c.Context(), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SendMessageResponse{
		Messages:   dto.ChatMessagesFromDomain(result.Messages),
		SurveyOpen: result.SurveyOpen,
	}})
}

// Transcript GET /api/helpcenter/transcript.
func (h *ChatHandler) Transcript(c *fiber.Ctx) error {
	resp := dto.TranscriptResponse{
		Messages:   dto.ChatMessagesFromDomain(h.conversation.Transcript()),
		SurveyOpen: h.conversation.SurveyOpen(),
		ShowFAQs:   h.conversation.ShowFAQs(),
	}
	if resp.ShowFAQs {
		resp.FAQs = h.conversation.FAQs()
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Suggestions GET /api/helpcenter/suggestions?q=.
func (h *ChatHandler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.conversation.Suggestions(c.Query("q"))})
}

// SetMode POST /api/helpcenter/mode.
func (h *ChatHandler) SetMode(c *fiber.Ctx) error {
	var req dto.ModeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	h.conversation.SetAssistantMode(req.Assistant)
	return c.JSON(fiber.Map{"data": fiber.Map{"assistant": h.conversation.AssistantMode()}})
}

// Notification GET /api/helpcenter/notification.
func (h *ChatHandler) Notification(c *fiber.Ctx) error {
	pending := h.conversation.PendingNotification()
	if pending == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NotificationResponse{
		TicketID: pending.ID,
		Response: pending.Response,
	}})
}

// AcknowledgeNotification POST /api/helpcenter/notification/ack.
func (h *ChatHandler) AcknowledgeNotification(c *fiber.Ctx) error {
	msg, err := h.conversation.AcknowledgeNotification(c.Context())
	if err != nil {
		return err
	}
	if msg == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.ChatMessageFromDomain(*msg)})
}

// DismissNotification POST /api/helpcenter/notification/dismiss.
func (h *ChatHandler) DismissNotification(c *fiber.Ctx) error {
	h.conversation.DismissNotification()
	return c.JSON(fiber.Map{"data": fiber.Map{"dismissed": true}})
}

// SubmitSurvey POST /api/helpcenter/survey.
func (h *ChatHandler) SubmitSurvey(c *fiber.Ctx) error {
	var req dto.SurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	switch req.Rating {
	case domain.RatingPositive, domain.RatingNeutral, domain.RatingNegative:
	default:
		return apperrors.NewValidationError("rating must be POSITIVE, NEUTRAL or NEGATIVE", nil)
	}

	result, err := h.conversation.SubmitSurvey(c.Context(), req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SendMessageResponse{
		Messages:   dto.ChatMessagesFromDomain(result.Messages),
		SurveyOpen: result.SurveyOpen,
	}})
}
