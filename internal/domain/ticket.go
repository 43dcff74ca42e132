package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen          TicketStatus = "OPEN"
	TicketStatusResponded     TicketStatus = "RESPONDED"
	TicketStatusCallRequested TicketStatus = "CALL_REQUESTED"
	TicketStatusClosed        TicketStatus = "CLOSED"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// IssueType classifies how a ticket originated.
type IssueType string

const (
	IssueTypeUserQuery           IssueType = "USER_QUERY"
	IssueTypeUserRequest         IssueType = "USER_REQUEST"
	IssueTypeUnsatisfiedResponse IssueType = "UNSATISFIED_RESPONSE"
)

// Contact identifies a human support contact rendered in chat messages.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SupportTicket is the aggregate for escalated user issues.
//
// Escalated and NotificationShown are one-shot flags: each may flip
// false->true exactly once and no state-dependent side effect fires again
// after that. EscalationDeadline is set once at creation and never mutated.
type SupportTicket struct {
	ID                 string         `json:"id"`
	IssueType          IssueType      `json:"issueType"`
	Description        string         `json:"description"`
	Status             TicketStatus   `json:"status"`
	Priority           TicketPriority `json:"priority"`
	CreatedAt          time.Time      `json:"createdAt"`
	EscalationDeadline *time.Time     `json:"escalationDeadline,omitempty"`
	Response           *string        `json:"response,omitempty"`
	RespondedAt        *time.Time     `json:"respondedAt,omitempty"`
	ClosedAt           *time.Time     `json:"closedAt,omitempty"`
	Escalated          bool           `json:"escalated"`
	NotificationShown  bool           `json:"notificationShown"`
	Conversation       []ChatMessage  `json:"conversation,omitempty"`
	Thread             []ChatMessage  `json:"thread,omitempty"`
	SupportContact     *Contact       `json:"supportContact,omitempty"`
}

// IsActive reports whether the ticket should appear in the operator queue.
func (t *SupportTicket) IsActive() bool {
	return t.Status != TicketStatusClosed
}
