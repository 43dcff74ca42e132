package dto

import (
	"time"

	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/responder"
)

// SendMessageRequest payload.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// ChatMessageResponse represents one transcript entry.
type ChatMessageResponse struct {
	Sender    domain.Sender `json:"sender"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
}

// SendMessageResponse returns the messages appended by one turn.
type SendMessageResponse struct {
	Messages   []ChatMessageResponse `json:"messages"`
	SurveyOpen bool                  `json:"survey_open"`
}

// TranscriptResponse returns the whole conversation.
type TranscriptResponse struct {
	Messages   []ChatMessageResponse `json:"messages"`
	SurveyOpen bool                  `json:"survey_open"`
	ShowFAQs   bool                  `json:"show_faqs"`
	FAQs       []responder.FAQ       `json:"faqs,omitempty"`
}

// ModeRequest toggles the assistant responder.
type ModeRequest struct {
	Assistant bool `json:"assistant"`
}

// SurveyRequest payload.
type SurveyRequest struct {
	Rating domain.CSATRating `json:"rating"`
}

// NotificationResponse surfaces a pending operator-response notification.
type NotificationResponse struct {
	TicketID string  `json:"ticket_id"`
	Response *string `json:"response,omitempty"`
}

// ChatMessageFromDomain maps a domain message.
func ChatMessageFromDomain(msg domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{Sender: msg.Sender, Text: msg.Text, Timestamp: msg.Timestamp}
}

// ChatMessagesFromDomain maps a slice of domain messages.
func ChatMessagesFromDomain(msgs []domain.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, ChatMessageFromDomain(msg))
	}
	return out
}
