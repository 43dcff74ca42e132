package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/persistence"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var testContact = domain.Contact{Name: "Sankalp", Phone: "+91 78220 71695"}

func newTestRepo(t *testing.T) (TicketRepository, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)}
	repo := NewTicketRepository(persistence.NewMemoryStore(), TicketRepositoryOptions{
		EscalationWindow: 24 * time.Hour,
		Contact:          testContact,
		Now:              clock.Now,
	})
	return repo, clock
}

func TestCreateAndFindCaseInsensitive(t *testing.T) {
	repo, clock := newTestRepo(t)
	ctx := context.Background()

	ticket, err := repo.Create(ctx, domain.IssueTypeUserQuery, "billing question")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, clock.Now(), ticket.CreatedAt)
	assert.Nil(t, ticket.EscalationDeadline)
	assert.Nil(t, ticket.SupportContact)

	found, err := repo.FindByID(ctx, "tkt-"+ticket.ID[4:])
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, ticket.ID, found.ID)

	missing, err := repo.FindByID(ctx, "TKT-0")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateEscalating(t *testing.T) {
	repo, clock := newTestRepo(t)
	ctx := context.Background()
	snapshot := []domain.ChatMessage{
		{Sender: domain.SenderUser, Text: "talk to a human", Timestamp: clock.Now()},
	}

	ticket, err := repo.CreateEscalating(ctx, domain.IssueTypeUserRequest, "talk to a human", snapshot)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityHigh, ticket.Priority)
	require.NotNil(t, ticket.EscalationDeadline)
	assert.Equal(t, clock.Now().Add(24*time.Hour), *ticket.EscalationDeadline)
	require.NotNil(t, ticket.SupportContact)
	assert.Equal(t, testContact, *ticket.SupportContact)
	assert.Equal(t, snapshot, ticket.Conversation)
}

func TestTicketIDCollisionBumps(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	// the clock never advances, so both creates land on the same millisecond
	first, err := repo.Create(ctx, domain.IssueTypeUserQuery, "one")
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.IssueTypeUserQuery, "two")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestMutationsOnMissingIDAreNoOps(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	ticket, err := repo.Respond(ctx, "TKT-404", "hello")
	require.NoError(t, err)
	assert.Nil(t, ticket)

	ticket, err = repo.Close(ctx, "TKT-404")
	require.NoError(t, err)
	assert.Nil(t, ticket)

	ticket, err = repo.RequestCall(ctx, "TKT-404")
	require.NoError(t, err)
	assert.Nil(t, ticket)

	set, err := repo.MarkEscalated(ctx, "TKT-404")
	require.NoError(t, err)
	assert.False(t, set)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRespondRequestCallClose(t *testing.T) {
	repo, clock := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.IssueTypeUserQuery, "refund status")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	responded, err := repo.Respond(ctx, created.ID, "Refund processed.")
	require.NoError(t, err)
	require.NotNil(t, responded)
	assert.Equal(t, domain.TicketStatusResponded, responded.Status)
	require.NotNil(t, responded.Response)
	assert.Equal(t, "Refund processed.", *responded.Response)
	require.NotNil(t, responded.RespondedAt)
	assert.Equal(t, clock.Now(), *responded.RespondedAt)

	called, err := repo.RequestCall(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCallRequested, called.Status)
	require.NotNil(t, called.SupportContact)
	assert.Equal(t, testContact, *called.SupportContact)

	closed, err := repo.Close(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	assert.False(t, closed.IsActive())

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSweepOverdueAndMarkEscalated(t *testing.T) {
	repo, clock := newTestRepo(t)
	ctx := context.Background()

	escalating, err := repo.CreateEscalating(ctx, domain.IssueTypeUserRequest, "need help", nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.IssueTypeUserQuery, "plain ticket never escalates")
	require.NoError(t, err)

	// nothing overdue before the deadline
	overdue, err := repo.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	clock.Advance(24*time.Hour + time.Minute)
	overdue, err = repo.SweepOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, escalating.ID, overdue[0].ID)

	set, err := repo.MarkEscalated(ctx, escalating.ID)
	require.NoError(t, err)
	assert.True(t, set)

	// flag is one-shot, and the sweep skips flagged tickets
	set, err = repo.MarkEscalated(ctx, escalating.ID)
	require.NoError(t, err)
	assert.False(t, set)

	overdue, err = repo.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestMarkNotifiedOnce(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.IssueTypeUserQuery, "question")
	require.NoError(t, err)
	_, err = repo.Respond(ctx, created.ID, "answer")
	require.NoError(t, err)

	set, err := repo.MarkNotified(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, set)

	set, err = repo.MarkNotified(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, set)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found.NotificationShown)
}

func TestAppendThreadMessage(t *testing.T) {
	repo, clock := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.IssueTypeUserQuery, "question")
	require.NoError(t, err)

	updated, err := repo.AppendThreadMessage(ctx, created.ID, domain.SenderOperator, "looking into it")
	require.NoError(t, err)
	require.Len(t, updated.Thread, 1)
	assert.Equal(t, domain.SenderOperator, updated.Thread[0].Sender)
	assert.Equal(t, "looking into it", updated.Thread[0].Text)
	assert.Equal(t, clock.Now(), updated.Thread[0].Timestamp)
}
