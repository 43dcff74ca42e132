package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/events"
	"github.com/park-seva/helpcenter-service/internal/repository"
)

// ErrEmptyResponse rejects blank operator replies.
var ErrEmptyResponse = errors.New("response text required")

// OperatorService backs the operator console: it lists the open queue and
// mutates the shared ticket store. Mutations targeting an unknown id return
// (nil, nil) without error, mirroring the store's silent no-op behavior.
type OperatorService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewOperatorService constructs the service.
func NewOperatorService(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OperatorService {
	return &OperatorService{
		tickets:    tickets,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// ListTickets returns every ticket not yet closed.
func (s *OperatorService) ListTickets(ctx context.Context) ([]domain.SupportTicket, error) {
	return s.tickets.ListActive(ctx)
}

// GetTicket returns one ticket by id, or nil when absent.
func (s *OperatorService) GetTicket(ctx context.Context, id string) (*domain.SupportTicket, error) {
	return s.tickets.FindByID(ctx, id)
}

// Respond records the operator reply and moves the ticket to RESPONDED. The
// conversation surface picks the change up on its next response poll.
func (s *OperatorService) Respond(ctx context.Context, id, response string) (*domain.SupportTicket, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, ErrEmptyResponse
	}
	ticket, err := s.tickets.Respond(ctx, id, response)
	if err != nil {
		return nil, err
	}
	if ticket != nil {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketResponded,
			TicketID: ticket.ID,
			Payload:  events.TicketRespondedPayload{ResponsePreview: preview(response, 120)},
		})
	}
	return ticket, nil
}

// RequestCall marks the ticket for a callback and attaches the support contact.
func (s *OperatorService) RequestCall(ctx context.Context, id string) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.RequestCall(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket != nil {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketCallRequested,
			TicketID: ticket.ID,
			Payload: events.TicketStatusPayload{
				OldStatus: domain.TicketStatusOpen,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// Close moves the ticket to its terminal state.
func (s *OperatorService) Close(ctx context.Context, id string) (*domain.SupportTicket, error) {
	before, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.Close(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket != nil {
		oldStatus := domain.TicketStatusOpen
		if before != nil {
			oldStatus = before.Status
		}
		s.publish(ctx, events.Event{
			Type:     events.EventTicketClosed,
			TicketID: ticket.ID,
			Payload: events.TicketStatusPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// AddNote appends an operator note to the ticket's own thread.
func (s *OperatorService) AddNote(ctx context.Context, id, text string) (*domain.SupportTicket, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}
	return s.tickets.AppendThreadMessage(ctx, id, domain.SenderOperator, text)
}

func (s *OperatorService) publish(ctx context.Context, event events.Event) {
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

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
