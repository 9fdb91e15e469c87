package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/classifier"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/repository"
	apperrors "github.com/spec-kit/triage-service/pkg/errorutil"
)

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	service       *TriageService
	tickets       repository.TicketRepository
	routingLogs   repository.RoutingLogRepository
	notifications repository.NotificationRepository
	now           *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := testNow
	clock := func() time.Time { return now }

	tickets := repository.NewMemoryTicketRepository(clock, nil)
	routingLogs := repository.NewMemoryRoutingLogRepository(nil)
	notifications := repository.NewMemoryNotificationRepository(nil)

	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(notifications, dispatcher, zap.NewNop()).RegisterHandlers()

	svc := NewTriageService(TriageDependencies{
		TicketRepo:     tickets,
		RoutingLogRepo: routingLogs,
		Classifier:     classifier.NewKeywordClassifier(0),
		Dispatcher:     dispatcher,
		Logger:         zap.NewNop(),
		Clock:          clock,
	})

	return &fixture{
		service:       svc,
		tickets:       tickets,
		routingLogs:   routingLogs,
		notifications: notifications,
		now:           &now,
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies, creates and routes the ticket", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.service.Submit(ctx, "a@b.com", "Cannot connect to VPN", "urgent, I am locked out")
		require.NoError(t, err)

		ticket := result.Ticket
		assert.Equal(t, "TKT-00001", ticket.ID)
		assert.Equal(t, domain.CategoryNetwork, ticket.Category)
		assert.Equal(t, domain.TicketPriorityCritical, ticket.Priority)
		assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
		assert.Equal(t, "a@b.com", ticket.SubmittedBy)
		assert.Equal(t, "Network Team", ticket.AssignedTo)
		assert.Equal(t, 0.91, ticket.Confidence)
		assert.Equal(t, testNow, ticket.SubmittedAt)
		assert.Equal(t, testNow.Add(4*time.Hour), ticket.SLADeadline)
		assert.Equal(t, domain.CategoryNetwork, result.Classification.Category)

		logs, err := f.routingLogs.List(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "LOG-TKT-00001", logs[0].ID)
		assert.Equal(t, domain.RoutingActionAutoRouted, logs[0].Action)
		assert.Equal(t, "Network Team", logs[0].AssignedTo)
		assert.Equal(t, "Classified as network with 91% confidence based on ticket content analysis.", logs[0].Reasoning)

		notifications, err := f.notifications.List(ctx)
		require.NoError(t, err)
		require.Len(t, notifications, 2)
		byID := map[string]domain.Notification{}
		for _, n := range notifications {
			byID[n.ID] = n
		}
		slack, ok := byID["NOTIF-TKT-00001-slack"]
		require.True(t, ok)
		assert.Equal(t, domain.ChannelSlack, slack.Channel)
		assert.Equal(t, "Network Team", slack.Recipient)
		assert.Equal(t, "New ticket assigned: Cannot connect to VPN (critical priority)", slack.Message)
		assert.Equal(t, domain.NotificationSent, slack.Status)
		jira, ok := byID["NOTIF-TKT-00001-jira"]
		require.True(t, ok)
		assert.Equal(t, domain.ChannelJira, jira.Channel)
		assert.Equal(t, "Ticket TKT-00001 created in Jira", jira.Message)
	})

	t.Run("rejects empty title before classification", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Submit(ctx, "a@b.com", "  ", "something broke")
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

		tickets, err := f.tickets.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Submit(ctx, "a@b.com", "title", "")
		require.Error(t, err)
	})

	t.Run("creates no ticket when classification fails", func(t *testing.T) {
		f := newFixture(t)
		f.service.classifier = failingClassifier{}

		_, err := f.service.Submit(ctx, "a@b.com", "title", "description")
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CLASSIFICATION_FAILED", domainErr.Code)

		tickets, err := f.tickets.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("sequential ids across submissions", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.service.Submit(ctx, "a@b.com", "Printer jam", "paper stuck")
		require.NoError(t, err)
		second, err := f.service.Submit(ctx, "a@b.com", "WiFi drops", "keeps disconnecting")
		require.NoError(t, err)
		assert.Equal(t, "TKT-00001", first.Ticket.ID)
		assert.Equal(t, "TKT-00002", second.Ticket.ID)

		tickets, err := f.service.ListTickets(ctx, TicketListInput{})
		require.NoError(t, err)
		require.Len(t, tickets, 2)
		assert.Equal(t, "TKT-00002", tickets[0].ID)
	})
}

type failingClassifier struct{}

func (failingClassifier) Classify(context.Context, string, string) (domain.ClassificationResult, error) {
	return domain.ClassificationResult{}, errors.New("backend unavailable")
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the classification without creating a ticket", func(t *testing.T) {
		f := newFixture(t)
		result, err := f.service.Classify(ctx, "Laptop screen flickering", "screen flickers constantly")
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryHardware, result.Category)

		tickets, err := f.tickets.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("validates emptiness", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Classify(ctx, "", "description")
		require.Error(t, err)
	})
}

func TestUpdateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("merges partial fields", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.service.Submit(ctx, "a@b.com", "Printer jam", "paper stuck")
		require.NoError(t, err)

		status := domain.TicketStatusInProgress
		updated, err := f.service.UpdateTicket(ctx, created.Ticket.ID, UpdateTicketInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
		assert.Nil(t, updated.ResolvedAt)
	})

	t.Run("stamps resolution time on terminal status", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.service.Submit(ctx, "a@b.com", "Printer jam", "paper stuck")
		require.NoError(t, err)

		*f.now = testNow.Add(2 * time.Hour)
		status := domain.TicketStatusResolved
		updated, err := f.service.UpdateTicket(ctx, created.Ticket.ID, UpdateTicketInput{Status: &status})
		require.NoError(t, err)
		require.NotNil(t, updated.ResolvedAt)
		assert.Equal(t, testNow.Add(2*time.Hour), *updated.ResolvedAt)
	})

	t.Run("priority change keeps the intake deadline", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.service.Submit(ctx, "a@b.com", "Printer jam", "paper stuck")
		require.NoError(t, err)
		originalDeadline := created.Ticket.SLADeadline

		priority := domain.TicketPriorityCritical
		updated, err := f.service.UpdateTicket(ctx, created.Ticket.ID, UpdateTicketInput{Priority: &priority})
		require.NoError(t, err)
		assert.Equal(t, originalDeadline, updated.SLADeadline)
	})

	t.Run("unknown id maps to not found", func(t *testing.T) {
		f := newFixture(t)
		status := domain.TicketStatusClosed
		_, err := f.service.UpdateTicket(ctx, "TKT-99999", UpdateTicketInput{Status: &status})
		require.Error(t, err)
		var domainErr *apperrors.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestListTicketsRefreshesBreach(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// critical priority -> 4h window
	created, err := f.service.Submit(ctx, "a@b.com", "Outage, urgent", "everything is down")
	require.NoError(t, err)
	assert.False(t, created.Ticket.SLABreach)

	*f.now = testNow.Add(5 * time.Hour)

	tickets, err := f.service.ListTickets(ctx, TicketListInput{})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.True(t, tickets[0].SLABreach)

	ticket, err := f.service.GetTicket(ctx, created.Ticket.ID)
	require.NoError(t, err)
	assert.True(t, ticket.SLABreach)
}
