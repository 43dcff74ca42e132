package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/persistence"
)

// TicketsKey is the stable snapshot key for the shared ticket collection.
const TicketsKey = "helpcenter:support_tickets"

// TicketRepository encapsulates ticket persistence. Every operation reads the
// full persisted collection, mutates it in memory, and writes the full
// collection back. Both the conversation surface and the operator console
// write through this interface with no locking, so a concurrent mutation can
// lose an update (last-writer-wins; documented limitation, kept by design).
//
// Mutations on a missing ticket id are silent no-ops and return (nil, nil).
type TicketRepository interface {
	Create(ctx context.Context, issueType domain.IssueType, description string) (*domain.SupportTicket, error)
	CreateEscalating(ctx context.Context, issueType domain.IssueType, description string, snapshot []domain.ChatMessage) (*domain.SupportTicket, error)
	FindByID(ctx context.Context, id string) (*domain.SupportTicket, error)
	List(ctx context.Context) ([]domain.SupportTicket, error)
	ListActive(ctx context.Context) ([]domain.SupportTicket, error)
	Respond(ctx context.Context, id, response string) (*domain.SupportTicket, error)
	RequestCall(ctx context.Context, id string) (*domain.SupportTicket, error)
	Close(ctx context.Context, id string) (*domain.SupportTicket, error)
	SweepOverdue(ctx context.Context) ([]domain.SupportTicket, error)
	MarkEscalated(ctx context.Context, id string) (bool, error)
	MarkNotified(ctx context.Context, id string) (bool, error)
	AppendThreadMessage(ctx context.Context, id string, sender domain.Sender, text string) (*domain.SupportTicket, error)
}

type snapshotTicketRepository struct {
	store   persistence.SnapshotStore
	now     func() time.Time
	window  time.Duration
	contact domain.Contact
}

// TicketRepositoryOptions configures ticket creation behavior.
type TicketRepositoryOptions struct {
	// EscalationWindow is added to CreatedAt to derive EscalationDeadline.
	EscalationWindow time.Duration
	// Contact is attached to escalating tickets and call requests.
	Contact domain.Contact
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

// NewTicketRepository instantiates the repository over a snapshot store.
func NewTicketRepository(store persistence.SnapshotStore, opts TicketRepositoryOptions) TicketRepository {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	window := opts.EscalationWindow
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &snapshotTicketRepository{
		store:   store,
		now:     now,
		window:  window,
		contact: opts.Contact,
	}
}

func (r *snapshotTicketRepository) load(ctx context.Context) ([]domain.SupportTicket, error) {
	doc, err := r.store.Load(ctx, TicketsKey)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return []domain.SupportTicket{}, nil
	}
	var tickets []domain.SupportTicket
	if err := json.Unmarshal(doc, &tickets); err != nil {
		return nil, fmt.Errorf("decode ticket collection: %w", err)
	}
	return tickets, nil
}

func (r *snapshotTicketRepository) save(ctx context.Context, tickets []domain.SupportTicket) error {
	doc, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("encode ticket collection: %w", err)
	}
	return r.store.Save(ctx, TicketsKey, doc)
}

// generateTicketID derives a TKT-<unix millis> token, bumping by a
// millisecond until it is unique within the collection.
func (r *snapshotTicketRepository) generateTicketID(tickets []domain.SupportTicket) string {
	millis := r.now().UnixMilli()
	for {
		id := fmt.Sprintf("TKT-%d", millis)
		if findTicket(tickets, id) == -1 {
			return id
		}
		millis++
	}
}

func findTicket(tickets []domain.SupportTicket, id string) int {
	for i := range tickets {
		if strings.EqualFold(tickets[i].ID, id) {
			return i
		}
	}
	return -1
}

func (r *snapshotTicketRepository) Create(ctx context.Context, issueType domain.IssueType, description string) (*domain.SupportTicket, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	ticket := domain.SupportTicket{
		ID:          r.generateTicketID(tickets),
		IssueType:   issueType,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityMedium,
		CreatedAt:   r.now(),
	}
	tickets = append(tickets, ticket)
	if err := r.save(ctx, tickets); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *snapshotTicketRepository) CreateEscalating(ctx context.Context, issueType domain.IssueType, description string, snapshot []domain.ChatMessage) (*domain.SupportTicket, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	createdAt := r.now()
	deadline := createdAt.Add(r.window)
	contact := r.contact
	ticket := domain.SupportTicket{
		ID:                 r.generateTicketID(tickets),
		IssueType:          issueType,
		Description:        description,
		Status:             domain.TicketStatusOpen,
		Priority:           domain.TicketPriorityHigh,
		CreatedAt:          createdAt,
		EscalationDeadline: &deadline,
		Conversation:       snapshot,
		SupportContact:     &contact,
	}
	tickets = append(tickets, ticket)
	if err := r.save(ctx, tickets); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *snapshotTicketRepository) FindByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findTicket(tickets, id)
	if idx == -1 {
		return nil, nil
	}
	ticket := tickets[idx]
	return &ticket, nil
}

func (r *snapshotTicketRepository) List(ctx context.Context) ([]domain.SupportTicket, error) {
	return r.load(ctx)
}

func (r *snapshotTicketRepository) ListActive(ctx context.Context) ([]domain.SupportTicket, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domain.SupportTicket, 0, len(tickets))
	for _, t := range tickets {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	return active, nil
}

// mutate applies fn to the ticket with the given id and writes the collection
// back. A missing id is a silent no-op returning (nil, nil).
func (r *snapshotTicketRepository) mutate(ctx context.Context, id string, fn func(*domain.SupportTicket)) (*domain.SupportTicket, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findTicket(tickets, id)
	if idx == -1 {
		return nil, nil
	}
	fn(&tickets[idx])
	if err := r.save(ctx, tickets); err != nil {
		return nil, err
	}
	ticket := tickets[idx]
	return &ticket, nil
}

func (r *snapshotTicketRepository) Respond(ctx context.Context, id, response string) (*domain.SupportTicket, error) {
	return r.mutate(ctx, id, func(t *domain.SupportTicket) {
		respondedAt := r.now()
		t.Response = &response
		t.Status = domain.TicketStatusResponded
		t.RespondedAt = &respondedAt
	})
}

func (r *snapshotTicketRepository) RequestCall(ctx context.Context, id string) (*domain.SupportTicket, error) {
	return r.mutate(ctx, id, func(t *domain.SupportTicket) {
		contact := r.contact
		t.Status = domain.TicketStatusCallRequested
		t.SupportContact = &contact
	})
}

func (r *snapshotTicketRepository) Close(ctx context.Context, id string) (*domain.SupportTicket, error) {
	return r.mutate(ctx, id, func(t *domain.SupportTicket) {
		closedAt := r.now()
		t.Status = domain.TicketStatusClosed
		t.ClosedAt = &closedAt
	})
}

// SweepOverdue returns open, unescalated tickets whose deadline has passed.
// The store does not mutate on sweep: the caller decides whether to surface
// the notification and marks the one-shot flag via MarkEscalated.
func (r *snapshotTicketRepository) SweepOverdue(ctx context.Context) ([]domain.SupportTicket, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now()
	var overdue []domain.SupportTicket
	for _, t := range tickets {
		if t.Status == domain.TicketStatusOpen && !t.Escalated &&
			t.EscalationDeadline != nil && !t.EscalationDeadline.After(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}

func (r *snapshotTicketRepository) MarkEscalated(ctx context.Context, id string) (bool, error) {
	return r.setFlag(ctx, id, func(t *domain.SupportTicket) *bool { return &t.Escalated })
}

func (r *snapshotTicketRepository) MarkNotified(ctx context.Context, id string) (bool, error) {
	return r.setFlag(ctx, id, func(t *domain.SupportTicket) *bool { return &t.NotificationShown })
}

// setFlag checks and sets a one-shot flag in a single read-modify-write pass.
// It reports whether this call performed the false->true transition.
func (r *snapshotTicketRepository) setFlag(ctx context.Context, id string, flag func(*domain.SupportTicket) *bool) (bool, error) {
	tickets, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	idx := findTicket(tickets, id)
	if idx == -1 {
		return false, nil
	}
	target := flag(&tickets[idx])
	if *target {
		return false, nil
	}
	*target = true
	if err := r.save(ctx, tickets); err != nil {
		return false, err
	}
	return true, nil
}

func (r *snapshotTicketRepository) AppendThreadMessage(ctx context.Context, id string, sender domain.Sender, text string) (*domain.SupportTicket, error) {
	return r.mutate(ctx, id, func(t *domain.SupportTicket) {
		t.Thread = append(t.Thread, domain.ChatMessage{
			Sender:    sender,
			Text:      text,
			Timestamp: r.now(),
		})
	})
}
