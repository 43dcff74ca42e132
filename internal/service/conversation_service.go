package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/events"
	"github.com/park-seva/helpcenter-service/internal/repository"
	"github.com/park-seva/helpcenter-service/internal/responder"
)

// IntentResponder resolves an utterance to an answer or control signal. The
// rule engine never fails, but the contract allows a remote model behind the
// same interface, so callers must handle errors.
type IntentResponder interface {
	Respond(ctx context.Context, utterance string, mode responder.Mode) (responder.Reply, error)
	Suggest(input string) []responder.FAQ
	FAQs() []responder.FAQ
}

// ConversationDependencies bundles collaborators for the conversation manager.
type ConversationDependencies struct {
	Transcript repository.TranscriptRepository
	Tickets    repository.TicketRepository
	Responder  IntentResponder
	CSAT       CSATSubmitter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger

	Contact domain.Contact
	// ClearDelay is how long to wait before clearing the transcript after a
	// positive rating.
	ClearDelay time.Duration
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// ConversationService owns the help-center transcript: it appends user
// messages, dispatches them to the intent responder, interprets control
// signals by driving the ticket store, manages the satisfaction survey, and
// services the two periodic polls.
//
// The transcript is persisted as a whole snapshot after every mutating event.
// A mutex guards in-process state because the chat surface and the pollers
// share one process here; the underlying store stays last-writer-wins.
type ConversationService struct {
	transcript repository.TranscriptRepository
	tickets    repository.TicketRepository
	responder  IntentResponder
	csat       CSATSubmitter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	contact    domain.Contact
	clearDelay time.Duration
	now        func() time.Time

	mu             sync.Mutex
	messages       []domain.ChatMessage
	pending        *domain.SupportTicket
	surveyOpen     bool
	lastResolvedBy domain.ResolvedBy
	assistantMode  bool
	showFAQs       bool
}

// SendResult reports the messages appended by one conversational turn.
type SendResult struct {
	Messages   []domain.ChatMessage
	SurveyOpen bool
}

// NewConversationService constructs the manager. Call Restore before serving.
func NewConversationService(deps ConversationDependencies) *ConversationService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ConversationService{
		transcript:     deps.Transcript,
		tickets:        deps.Tickets,
		responder:      deps.Responder,
		csat:           deps.CSAT,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		contact:        deps.Contact,
		clearDelay:     deps.ClearDelay,
		now:            now,
		lastResolvedBy: domain.ResolvedByAI,
		showFAQs:       true,
	}
}

// Restore loads the persisted transcript so the conversation survives restarts.
func (s *ConversationService) Restore(ctx context.Context) error {
	messages, err := s.transcript.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = messages
	s.showFAQs = len(messages) == 0
	return nil
}

// Transcript returns a copy of the current transcript.
func (s *ConversationService) Transcript() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// ShowFAQs reports whether the FAQ-suggestion view should be shown.
func (s *ConversationService) ShowFAQs() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showFAQs
}

// SurveyOpen reports whether the satisfaction survey is awaiting a rating.
func (s *ConversationService) SurveyOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surveyOpen
}

// SetAssistantMode toggles between the simple FAQ responder and the assistant.
func (s *ConversationService) SetAssistantMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assistantMode = enabled
}

// AssistantMode reports the currently selected responder mode.
func (s *ConversationService) AssistantMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assistantMode
}

// Suggestions returns FAQ chips matching a partial input.
func (s *ConversationService) Suggestions(input string) []responder.FAQ {
	return s.responder.Suggest(input)
}

// FAQs returns the chips shown on a fresh conversation.
func (s *ConversationService) FAQs() []responder.FAQ {
	return s.responder.FAQs()
}

// SendMessage runs one conversational turn. Empty input is silently ignored.
// A responder failure degrades to a fixed apology and leaves the survey
// closed; everything else either renders an answer or drives the ticket store.
func (s *ConversationService) SendMessage(ctx context.Context, text string) (SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SendResult{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := len(s.messages)
	s.appendLocked(domain.SenderUser, text)
	s.showFAQs = false

	mode := responder.ModeSimple
	if s.assistantMode {
		mode = responder.ModeAssistant
	}

	reply, err := s.responder.Respond(ctx, text, mode)
	if err != nil {
		s.logger.Warn("intent responder unavailable", zap.Error(err))
		s.appendLocked(domain.SenderAssistant, apologyText)
		s.persistLocked(ctx)
		return s.resultLocked(start), nil
	}

	switch reply.Kind {
	case responder.ReplyRaiseTicket:
		if err := s.raiseEscalatingTicketLocked(ctx, text); err != nil {
			return SendResult{}, err
		}
	case responder.ReplyCheckTicketStatus:
		if err := s.checkTicketStatusLocked(ctx, text); err != nil {
			return SendResult{}, err
		}
	default:
		s.appendLocked(domain.SenderAssistant, reply.Text)
		s.lastResolvedBy = domain.ResolvedByAI
		s.surveyOpen = true
	}

	s.persistLocked(ctx)
	return s.resultLocked(start), nil
}

// raiseEscalatingTicketLocked opens a high-priority ticket carrying the
// conversation snapshot and renders the multi-line confirmation.
func (s *ConversationService) raiseEscalatingTicketLocked(ctx context.Context, description string) error {
	snapshot := make([]domain.ChatMessage, len(s.messages))
	copy(snapshot, s.messages)

	ticket, err := s.tickets.CreateEscalating(ctx, domain.IssueTypeUserRequest, description, snapshot)
	if err != nil {
		return err
	}
	s.appendLocked(domain.SenderAssistant, ticketConfirmationText(ticket.ID, description))
	s.lastResolvedBy = domain.ResolvedByOperator
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			IssueType: ticket.IssueType,
			Priority:  ticket.Priority,
			Escalates: true,
		},
	})
	return nil
}

// checkTicketStatusLocked runs the ticket-status lookup sub-flow.
func (s *ConversationService) checkTicketStatusLocked(ctx context.Context, utterance string) error {
	id, ok := responder.TicketIDIn(utterance)
	if !ok {
		s.appendLocked(domain.SenderAssistant, statusPromptText)
		return nil
	}

	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ticket == nil {
		s.appendLocked(domain.SenderAssistant, ticketNotFoundText(id, s.contact))
		return nil
	}
	if ticket.Status == domain.TicketStatusResponded && ticket.Response != nil {
		s.appendLocked(domain.SenderOperator, *ticket.Response)
		s.surveyOpen = true
		s.lastResolvedBy = domain.ResolvedByOperator
		return nil
	}
	s.appendLocked(domain.SenderAssistant, ticketInProgressText(ticket, s.contact))
	return nil
}

// PollResponses surfaces the first operator-answered ticket whose
// notification has not been shown yet. The one-shot flag is set the moment
// the notification surfaces so repeated polls never re-deliver it.
func (s *ConversationService) PollResponses(ctx context.Context) error {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return err
	}
	for i := range tickets {
		t := tickets[i]
		if t.Status != domain.TicketStatusResponded || t.NotificationShown {
			continue
		}
		shown, err := s.tickets.MarkNotified(ctx, t.ID)
		if err != nil {
			return err
		}
		if shown {
			t.NotificationShown = true
			s.mu.Lock()
			s.pending = &t
			s.mu.Unlock()
		}
		return nil
	}
	return nil
}

// PendingNotification returns the surfaced-but-unacknowledged ticket, if any.
func (s *ConversationService) PendingNotification() *domain.SupportTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	ticket := *s.pending
	return &ticket
}

// AcknowledgeNotification renders the operator response into the transcript
// and opens the satisfaction survey.
func (s *ConversationService) AcknowledgeNotification(ctx context.Context) (*domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil || s.pending.Response == nil {
		s.pending = nil
		return nil, nil
	}
	msg := s.appendLocked(domain.SenderOperator, *s.pending.Response)
	s.pending = nil
	s.surveyOpen = true
	s.lastResolvedBy = domain.ResolvedByOperator
	s.persistLocked(ctx)
	return &msg, nil
}

// DismissNotification drops the pending notification without rendering it.
// The notificationShown flag stays set; the response remains reachable
// through the ticket-status lookup.
func (s *ConversationService) DismissNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// PollEscalations sweeps overdue tickets and appends the contact-support
// message once per ticket. The escalated flag is checked and set in a single
// store pass, keeping the sweep idempotent under repeated polls.
func (s *ConversationService) PollEscalations(ctx context.Context) error {
	overdue, err := s.tickets.SweepOverdue(ctx)
	if err != nil {
		return err
	}
	for _, t := range overdue {
		escalated, err := s.tickets.MarkEscalated(ctx, t.ID)
		if err != nil {
			return err
		}
		if !escalated {
			continue
		}
		s.mu.Lock()
		s.appendLocked(domain.SenderAssistant, escalationText(t.ID, s.contact))
		s.persistLocked(ctx)
		s.mu.Unlock()
		s.publish(ctx, events.Event{
			Type:     events.EventTicketEscalated,
			TicketID: t.ID,
			Payload:  events.TicketEscalatedPayload{Deadline: t.EscalationDeadline},
		})
	}
	return nil
}

// SubmitSurvey closes the survey and reacts to the rating: negative feedback
// spawns a plain ticket from the most recent user message, positive feedback
// thanks the user and clears the transcript after a short delay. The CSAT
// record is always forwarded fire-and-forget.
func (s *ConversationService) SubmitSurvey(ctx context.Context, rating domain.CSATRating) (SendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.surveyOpen = false
	resolvedBy := s.lastResolvedBy
	var appended []domain.ChatMessage

	switch rating {
	case domain.RatingNegative:
		if desc, ok := s.lastUserMessageLocked(); ok {
			ticket, err := s.tickets.Create(ctx, domain.IssueTypeUnsatisfiedResponse, desc)
			if err != nil {
				return SendResult{}, err
			}
			appended = append(appended, s.appendLocked(domain.SenderAssistant, surveyTicketRaisedText(ticket.ID)))
			s.publish(ctx, events.Event{
				Type:     events.EventTicketCreated,
				TicketID: ticket.ID,
				Payload: events.TicketCreatedPayload{
					IssueType: ticket.IssueType,
					Priority:  ticket.Priority,
				},
			})
		}
	case domain.RatingPositive:
		appended = append(appended, s.appendLocked(domain.SenderAssistant, positiveFeedbackText))
	default:
		appended = append(appended, s.appendLocked(domain.SenderAssistant, neutralFeedbackText))
	}
	s.persistLocked(ctx)
	if rating == domain.RatingPositive {
		s.scheduleTranscriptClear()
	}

	record := domain.CSAT{Rating: rating, ResolvedBy: resolvedBy}
	go s.forwardCSAT(record)

	return SendResult{Messages: appended, SurveyOpen: s.surveyOpen}, nil
}

// forwardCSAT submits the record in the background; failures are swallowed.
func (s *ConversationService) forwardCSAT(record domain.CSAT) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.csat.Submit(ctx, record); err != nil {
		s.logger.Debug("csat submission failed", zap.Error(err))
	}
	s.publish(ctx, events.Event{
		Type: events.EventCSATSubmitted,
		Payload: events.CSATSubmittedPayload{
			Rating:     record.Rating,
			ResolvedBy: record.ResolvedBy,
		},
	})
}

// scheduleTranscriptClear resets the conversation to the FAQ view after the
// configured delay. A zero delay clears synchronously (used by tests).
func (s *ConversationService) scheduleTranscriptClear() {
	if s.clearDelay <= 0 {
		s.clearLocked()
		return
	}
	time.AfterFunc(s.clearDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.clearLocked()
	})
}

func (s *ConversationService) clearLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.transcript.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear transcript", zap.Error(err))
	}
	s.messages = nil
	s.showFAQs = true
}

func (s *ConversationService) lastUserMessageLocked() (string, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == domain.SenderUser {
			return s.messages[i].Text, true
		}
	}
	return "", false
}

func (s *ConversationService) appendLocked(sender domain.Sender, text string) domain.ChatMessage {
	msg := domain.ChatMessage{Sender: sender, Text: text, Timestamp: s.now()}
	s.messages = append(s.messages, msg)
	return msg
}

func (s *ConversationService) persistLocked(ctx context.Context) {
	if err := s.transcript.Save(ctx, s.messages); err != nil {
		s.logger.Warn("failed to persist transcript", zap.Error(err))
	}
}

func (s *ConversationService) resultLocked(start int) SendResult {
	appended := make([]domain.ChatMessage, len(s.messages)-start)
	copy(appended, s.messages[start:])
	return SendResult{Messages: appended, SurveyOpen: s.surveyOpen}
}

func (s *ConversationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
