package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/persistence"
	"github.com/park-seva/helpcenter-service/internal/repository"
)

func newOperatorFixture(t *testing.T) (*OperatorService, repository.TicketRepository, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)}
	tickets := repository.NewTicketRepository(persistence.NewMemoryStore(), repository.TicketRepositoryOptions{
		EscalationWindow: 24 * time.Hour,
		Contact:          domain.Contact{Name: "Sankalp", Phone: "+91 78220 71695"},
		Now:              clock.Now,
	})
	return NewOperatorService(tickets, nil, zap.NewNop()), tickets, clock
}

func TestOperatorListTicketsExcludesClosed(t *testing.T) {
	svc, tickets, _ := newOperatorFixture(t)
	ctx := context.Background()

	open, err := tickets.Create(ctx, domain.IssueTypeUserQuery, "open one")
	require.NoError(t, err)
	closed, err := tickets.Create(ctx, domain.IssueTypeUserQuery, "closed one")
	require.NoError(t, err)
	_, err = tickets.Close(ctx, closed.ID)
	require.NoError(t, err)

	listed, err := svc.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, open.ID, listed[0].ID)
}

func TestOperatorRespondValidatesAndTransitions(t *testing.T) {
	svc, tickets, _ := newOperatorFixture(t)
	ctx := context.Background()

	created, err := tickets.Create(ctx, domain.IssueTypeUserRequest, "need help")
	require.NoError(t, err)

	_, err = svc.Respond(ctx, created.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	ticket, err := svc.Respond(ctx, created.ID, "  We fixed it.  ")
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, domain.TicketStatusResponded, ticket.Status)
	require.NotNil(t, ticket.Response)
	assert.Equal(t, "We fixed it.", *ticket.Response)
}

func TestOperatorMutationsOnUnknownIDAreNoOps(t *testing.T) {
	svc, _, _ := newOperatorFixture(t)
	ctx := context.Background()

	ticket, err := svc.Respond(ctx, "TKT-404", "hello")
	require.NoError(t, err)
	assert.Nil(t, ticket)

	ticket, err = svc.Close(ctx, "TKT-404")
	require.NoError(t, err)
	assert.Nil(t, ticket)

	ticket, err = svc.RequestCall(ctx, "TKT-404")
	require.NoError(t, err)
	assert.Nil(t, ticket)
}

func TestOperatorTicketLifecycle(t *testing.T) {
	svc, tickets, clock := newOperatorFixture(t)
	ctx := context.Background()

	created, err := tickets.CreateEscalating(ctx, domain.IssueTypeUserRequest, "talk to a human", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, created.Status)

	clock.Advance(time.Hour)
	responded, err := svc.Respond(ctx, created.ID, "Resolved your request.")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResponded, responded.Status)

	called, err := svc.RequestCall(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCallRequested, called.Status)
	require.NotNil(t, called.SupportContact)
	assert.Equal(t, "Sankalp", called.SupportContact.Name)

	closedTicket, err := svc.Close(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, closedTicket.Status)
	require.NotNil(t, closedTicket.ClosedAt)
	assert.Equal(t, clock.Now(), *closedTicket.ClosedAt)
}

func TestOperatorAddNote(t *testing.T) {
	svc, tickets, _ := newOperatorFixture(t)
	ctx := context.Background()

	created, err := tickets.Create(ctx, domain.IssueTypeUserQuery, "question")
	require.NoError(t, err)

	_, err = svc.AddNote(ctx, created.ID, "  ")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	ticket, err := svc.AddNote(ctx, created.ID, "escalate to billing")
	require.NoError(t, err)
	require.Len(t, ticket.Thread, 1)
	assert.Equal(t, domain.SenderOperator, ticket.Thread[0].Sender)
	assert.Equal(t, "escalate to billing", ticket.Thread[0].Text)
}

func TestPreviewTruncatesLongBodies(t *testing.T) {
	assert.Equal(t, "short", preview("  short  ", 120))
	long := preview("aaaaaaaaaaaaaaaaaaaa", 10)
	assert.Len(t, long, 10)
	assert.Equal(t, "aaaaaaa...", long)
}
