package events

import (
	"time"

	"github.com/park-seva/helpcenter-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketResponded     EventType = "ticket_responded"
	EventTicketCallRequested EventType = "ticket_call_requested"
	EventTicketClosed        EventType = "ticket_closed"
	EventTicketEscalated     EventType = "ticket_escalated"
	EventCSATSubmitted       EventType = "csat_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	IssueType domain.IssueType      `json:"issue_type"`
	Priority  domain.TicketPriority `json:"priority"`
	Escalates bool                  `json:"escalates"`
}

// TicketRespondedPayload payload.
type TicketRespondedPayload struct {
	ResponsePreview string `json:"response_preview"`
}

// TicketStatusPayload payload for call-request and close events.
type TicketStatusPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	Deadline *time.Time `json:"deadline,omitempty"`
}

// CSATSubmittedPayload payload.
type CSATSubmittedPayload struct {
	Rating     domain.CSATRating `json:"rating"`
	ResolvedBy domain.ResolvedBy `json:"resolved_by"`
}
