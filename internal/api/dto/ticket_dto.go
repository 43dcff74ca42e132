package dto

import (
	"time"

	"github.com/park-seva/helpcenter-service/internal/domain"
)

// OperatorLoginRequest payload.
type OperatorLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OperatorLoginResponse returns the bearer token.
type OperatorLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RespondRequest carries the operator reply.
type RespondRequest struct {
	Response string `json:"response"`
}

// CloseRequest requires explicit confirmation before closing.
type CloseRequest struct {
	Confirm bool `json:"confirm"`
}

// NoteRequest appends an operator note to the ticket thread.
type NoteRequest struct {
	Text string `json:"text"`
}

// TicketResponse is the operator console view of a ticket.
type TicketResponse struct {
	ID                 string                `json:"id"`
	IssueType          domain.IssueType      `json:"issue_type"`
	Description        string                `json:"description"`
	Status             domain.TicketStatus   `json:"status"`
	Priority           domain.TicketPriority `json:"priority"`
	CreatedAt          time.Time             `json:"created_at"`
	EscalationDeadline *time.Time            `json:"escalation_deadline,omitempty"`
	Response           *string               `json:"response,omitempty"`
	RespondedAt        *time.Time            `json:"responded_at,omitempty"`
	ClosedAt           *time.Time            `json:"closed_at,omitempty"`
	Escalated          bool                  `json:"escalated"`
	SupportContact     *domain.Contact       `json:"support_contact,omitempty"`
	Conversation       []ChatMessageResponse `json:"conversation,omitempty"`
	Thread             []ChatMessageResponse `json:"thread,omitempty"`
}

// TicketFromDomain maps a domain ticket.
func TicketFromDomain(t *domain.SupportTicket) TicketResponse {
	return TicketResponse{
		ID:                 t.ID,
		IssueType:          t.IssueType,
		Description:        t.Description,
		Status:             t.Status,
		Priority:           t.Priority,
		CreatedAt:          t.CreatedAt,
		EscalationDeadline: t.EscalationDeadline,
		Response:           t.Response,
		RespondedAt:        t.RespondedAt,
		ClosedAt:           t.ClosedAt,
		Escalated:          t.Escalated,
		SupportContact:     t.SupportContact,
		Conversation:       ChatMessagesFromDomain(t.Conversation),
		Thread:             ChatMessagesFromDomain(t.Thread),
	}
}
