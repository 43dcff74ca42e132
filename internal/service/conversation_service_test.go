package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/persistence"
	"github.com/park-seva/helpcenter-service/internal/repository"
	"github.com/park-seva/helpcenter-service/internal/responder"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// csatRecorder captures submissions from the fire-and-forget goroutine.
type csatRecorder struct {
	ch chan domain.CSAT
}

func newCSATRecorder() *csatRecorder {
	return &csatRecorder{ch: make(chan domain.CSAT, 8)}
}

func (c *csatRecorder) Submit(_ context.Context, record domain.CSAT) error {
	c.ch <- record
	return nil
}

func (c *csatRecorder) wait(t *testing.T) domain.CSAT {
	t.Helper()
	select {
	case record := <-c.ch:
		return record
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for csat submission")
		return domain.CSAT{}
	}
}

type failingResponder struct{}

func (failingResponder) Respond(context.Context, string, responder.Mode) (responder.Reply, error) {
	return responder.Reply{}, errors.New("upstream unavailable")
}
func (failingResponder) Suggest(string) []responder.FAQ { return nil }
func (failingResponder) FAQs() []responder.FAQ          { return nil }

type conversationFixture struct {
	service    *ConversationService
	tickets    repository.TicketRepository
	transcript repository.TranscriptRepository
	store      persistence.SnapshotStore
	clock      *fakeClock
	csat       *csatRecorder
	contact    domain.Contact
}

func newConversationFixture(t *testing.T, intents IntentResponder) *conversationFixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)}
	contact := domain.Contact{Name: "Sankalp", Phone: "+91 78220 71695"}
	store := persistence.NewMemoryStore()
	tickets := repository.NewTicketRepository(store, repository.TicketRepositoryOptions{
		EscalationWindow: 24 * time.Hour,
		Contact:          contact,
		Now:              clock.Now,
	})
	transcript := repository.NewTranscriptRepository(store)
	csat := newCSATRecorder()

	svc := NewConversationService(ConversationDependencies{
		Transcript: transcript,
		Tickets:    tickets,
		Responder:  intents,
		CSAT:       csat,
		Logger:     zap.NewNop(),
		Contact:    contact,
		ClearDelay: 0,
		Now:        clock.Now,
	})
	require.NoError(t, svc.Restore(context.Background()))

	return &conversationFixture{
		service:    svc,
		tickets:    tickets,
		transcript: transcript,
		store:      store,
		clock:      clock,
		csat:       csat,
		contact:    contact,
	}
}

func TestSendMessageEmptyInputIsIgnored(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())

	result, err := fx.service.SendMessage(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, result.Messages)
	assert.Empty(t, fx.service.Transcript())
	assert.True(t, fx.service.ShowFAQs())
}

func TestSendMessageAnswerOpensSurvey(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())

	result, err := fx.service.SendMessage(context.Background(), "how to book parking")
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, domain.SenderUser, result.Messages[0].Sender)
	assert.Equal(t, domain.SenderAssistant, result.Messages[1].Sender)
	assert.True(t, result.SurveyOpen)
	assert.False(t, fx.service.ShowFAQs())

	// transcript is persisted after every turn
	persisted, err := fx.transcript.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
}

func TestSendMessageResponderFailureDegradesToApology(t *testing.T) {
	fx := newConversationFixture(t, failingResponder{})

	result, err := fx.service.SendMessage(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, apologyText, result.Messages[1].Text)
	assert.False(t, result.SurveyOpen)
	assert.False(t, fx.service.SurveyOpen())
}

func TestRaiseTicketFlow(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	fx.service.SetAssistantMode(true)
	ctx := context.Background()

	result, err := fx.service.SendMessage(ctx, "I want to talk to a human")
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.False(t, result.SurveyOpen)

	tickets, err := fx.tickets.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	ticket := tickets[0]
	assert.Equal(t, domain.IssueTypeUserRequest, ticket.IssueType)
	assert.Equal(t, domain.TicketPriorityHigh, ticket.Priority)
	assert.Equal(t, "I want to talk to a human", ticket.Description)
	require.NotNil(t, ticket.EscalationDeadline)
	assert.Equal(t, fx.clock.Now().Add(24*time.Hour), *ticket.EscalationDeadline)

	// the snapshot includes the triggering user message
	require.Len(t, ticket.Conversation, 1)
	assert.Equal(t, domain.SenderUser, ticket.Conversation[0].Sender)

	confirmation := result.Messages[1].Text
	assert.Equal(t, ticketConfirmationText(ticket.ID, ticket.Description), confirmation)
	assert.Contains(t, confirmation, ticket.ID)
	assert.Contains(t, confirmation, "Priority: High")
}

func TestCheckTicketStatusPromptsWithoutID(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	fx.service.SetAssistantMode(true)

	result, err := fx.service.SendMessage(context.Background(), "check my ticket status")
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, statusPromptText, result.Messages[1].Text)
	assert.False(t, result.SurveyOpen)
}

func TestCheckTicketStatusUnknownID(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	fx.service.SetAssistantMode(true)

	result, err := fx.service.SendMessage(context.Background(), "ticket status tkt-1700000000000")
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	text := result.Messages[1].Text
	assert.Contains(t, text, "Ticket TKT-1700000000000 not found.")
	assert.Contains(t, text, "Contact Person: Sankalp")
	assert.Contains(t, text, "Mobile: +91 78220 71695")
}

func TestCheckTicketStatusInProgressAndResponded(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	fx.service.SetAssistantMode(true)
	ctx := context.Background()

	ticket, err := fx.tickets.Create(ctx, domain.IssueTypeUserQuery, "refund question")
	require.NoError(t, err)

	result, err := fx.service.SendMessage(ctx, "ticket status "+ticket.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Messages[1].Text, "Status: In Progress")
	assert.False(t, result.SurveyOpen)

	_, err = fx.tickets.Respond(ctx, ticket.ID, "Your refund was processed today.")
	require.NoError(t, err)

	result, err = fx.service.SendMessage(ctx, "ticket status "+ticket.ID)
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, domain.SenderOperator, result.Messages[1].Sender)
	assert.Equal(t, "Your refund was processed today.", result.Messages[1].Text)
	assert.True(t, result.SurveyOpen)
}

func TestNegativeSurveyRaisesTicketFromLastUserMessage(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	ctx := context.Background()

	_, err := fx.service.SendMessage(ctx, "how to book parking")
	require.NoError(t, err)
	require.True(t, fx.service.SurveyOpen())

	result, err := fx.service.SubmitSurvey(ctx, domain.RatingNegative)
	require.NoError(t, err)
	assert.False(t, result.SurveyOpen)
	assert.False(t, fx.service.SurveyOpen())

	tickets, err := fx.tickets.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.IssueTypeUnsatisfiedResponse, tickets[0].IssueType)
	assert.Equal(t, "how to book parking", tickets[0].Description)
	assert.Equal(t, domain.TicketPriorityMedium, tickets[0].Priority)
	assert.Nil(t, tickets[0].EscalationDeadline)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, surveyTicketRaisedText(tickets[0].ID), result.Messages[0].Text)

	record := fx.csat.wait(t)
	assert.Equal(t, domain.RatingNegative, record.Rating)
	assert.Equal(t, domain.ResolvedByAI, record.ResolvedBy)
}

func TestPositiveSurveyThanksAndClearsTranscript(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	ctx := context.Background()

	_, err := fx.service.SendMessage(ctx, "how to book parking")
	require.NoError(t, err)

	result, err := fx.service.SubmitSurvey(ctx, domain.RatingPositive)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, positiveFeedbackText, result.Messages[0].Text)

	// clear delay is zero in tests, so the reset is synchronous
	assert.Empty(t, fx.service.Transcript())
	assert.True(t, fx.service.ShowFAQs())

	persisted, err := fx.transcript.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)

	record := fx.csat.wait(t)
	assert.Equal(t, domain.RatingPositive, record.Rating)
}

func TestNeutralSurveyAcknowledges(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	ctx := context.Background()

	_, err := fx.service.SendMessage(ctx, "how to book parking")
	require.NoError(t, err)

	result, err := fx.service.SubmitSurvey(ctx, domain.RatingNeutral)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, neutralFeedbackText, result.Messages[0].Text)
	assert.NotEmpty(t, fx.service.Transcript())

	record := fx.csat.wait(t)
	assert.Equal(t, domain.RatingNeutral, record.Rating)
}

func TestSurveyAfterOperatorResolutionReportsOperator(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	fx.service.SetAssistantMode(true)
	ctx := context.Background()

	_, err := fx.service.SendMessage(ctx, "please raise a ticket")
	require.NoError(t, err)

	_, err = fx.service.SubmitSurvey(ctx, domain.RatingNeutral)
	require.NoError(t, err)

	record := fx.csat.wait(t)
	assert.Equal(t, domain.ResolvedByOperator, record.ResolvedBy)
}

func TestPollResponsesSurfacesNotificationOnce(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	fx.service.SetAssistantMode(true)
	ctx := context.Background()

	_, err := fx.service.SendMessage(ctx, "talk to a human please")
	require.NoError(t, err)
	tickets, err := fx.tickets.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	ticketID := tickets[0].ID

	// nothing responded yet
	require.NoError(t, fx.service.PollResponses(ctx))
	assert.Nil(t, fx.service.PendingNotification())

	_, err = fx.tickets.Respond(ctx, ticketID, "We have extended your booking.")
	require.NoError(t, err)

	require.NoError(t, fx.service.PollResponses(ctx))
	pending := fx.service.PendingNotification()
	require.NotNil(t, pending)
	assert.Equal(t, ticketID, pending.ID)

	before := len(fx.service.Transcript())
	msg, err := fx.service.AcknowledgeNotification(ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, domain.SenderOperator, msg.Sender)
	assert.Equal(t, "We have extended your booking.", msg.Text)
	assert.Len(t, fx.service.Transcript(), before+1)
	assert.True(t, fx.service.SurveyOpen())
	assert.Nil(t, fx.service.PendingNotification())

	// the notification flag is one-shot: later polls never re-surface it
	require.NoError(t, fx.service.PollResponses(ctx))
	assert.Nil(t, fx.service.PendingNotification())
}

func TestDismissNotificationKeepsResponseReachable(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	fx.service.SetAssistantMode(true)
	ctx := context.Background()

	_, err := fx.service.SendMessage(ctx, "talk to a human please")
	require.NoError(t, err)
	tickets, err := fx.tickets.List(ctx)
	require.NoError(t, err)
	ticketID := tickets[0].ID

	_, err = fx.tickets.Respond(ctx, ticketID, "Done.")
	require.NoError(t, err)
	require.NoError(t, fx.service.PollResponses(ctx))
	require.NotNil(t, fx.service.PendingNotification())

	before := len(fx.service.Transcript())
	fx.service.DismissNotification()
	assert.Nil(t, fx.service.PendingNotification())
	assert.Len(t, fx.service.Transcript(), before)

	// the response still renders through the status lookup
	result, err := fx.service.SendMessage(ctx, "ticket status "+ticketID)
	require.NoError(t, err)
	assert.Equal(t, "Done.", result.Messages[1].Text)
	assert.Equal(t, domain.SenderOperator, result.Messages[1].Sender)
}

func TestPollEscalationsAppendsContactMessageOnce(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	fx.service.SetAssistantMode(true)
	ctx := context.Background()

	_, err := fx.service.SendMessage(ctx, "I need to speak to an agent")
	require.NoError(t, err)
	tickets, err := fx.tickets.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	ticketID := tickets[0].ID

	// before the deadline the sweep finds nothing
	require.NoError(t, fx.service.PollEscalations(ctx))
	assert.Len(t, fx.service.Transcript(), 2)

	fx.clock.Advance(24*time.Hour + time.Minute)
	require.NoError(t, fx.service.PollEscalations(ctx))
	transcript := fx.service.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, escalationText(ticketID, fx.contact), transcript[2].Text)

	// a second poll must not duplicate the message
	require.NoError(t, fx.service.PollEscalations(ctx))
	assert.Len(t, fx.service.Transcript(), 3)

	stored, err := fx.tickets.FindByID(ctx, ticketID)
	require.NoError(t, err)
	assert.True(t, stored.Escalated)
	assert.Equal(t, domain.TicketStatusOpen, stored.Status)
}

func TestRestoreReloadsPersistedTranscript(t *testing.T) {
	fx := newConversationFixture(t, responder.NewEngine())
	ctx := context.Background()

	_, err := fx.service.SendMessage(ctx, "how to book parking")
	require.NoError(t, err)

	revived := NewConversationService(ConversationDependencies{
		Transcript: fx.transcript,
		Tickets:    fx.tickets,
		Responder:  responder.NewEngine(),
		CSAT:       fx.csat,
		Logger:     zap.NewNop(),
		Contact:    fx.contact,
		Now:        fx.clock.Now,
	})
	require.NoError(t, revived.Restore(ctx))
	assert.Len(t, revived.Transcript(), 2)
	assert.False(t, revived.ShowFAQs())
}
