package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTicket(title string) *domain.Ticket {
	return &domain.Ticket{
		Title:       title,
		Description: "description",
		Category:    domain.CategoryOther,
		Priority:    domain.TicketPriorityMedium,
		Status:      domain.TicketStatusOpen,
		SubmittedBy: "user@example.com",
	}
}

func TestMemoryTicketRepositoryCreate(t *testing.T) {
	repo := NewMemoryTicketRepository(fixedClock, nil)
	ctx := context.Background()

	first := newTicket("first")
	require.NoError(t, repo.Create(ctx, first))
	second := newTicket("second")
	require.NoError(t, repo.Create(ctx, second))

	t.Run("sequential zero-padded ids", func(t *testing.T) {
		assert.Equal(t, "TKT-00001", first.ID)
		assert.Equal(t, "TKT-00002", second.ID)
	})

	t.Run("stamps submission time and SLA fields", func(t *testing.T) {
		assert.Equal(t, fixedNow, first.SubmittedAt)
		assert.Equal(t, fixedNow.Add(24*time.Hour), first.SLADeadline)
		assert.False(t, first.SLABreach)
	})

	t.Run("newest ticket listed first", func(t *testing.T) {
		tickets, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, tickets, 2)
		assert.Equal(t, "TKT-00002", tickets[0].ID)
		assert.Equal(t, "TKT-00001", tickets[1].ID)
	})
}

func TestMemoryTicketRepositorySeedContinuesSequence(t *testing.T) {
	seed := []domain.Ticket{
		{ID: "TKT-00002", Title: "seeded b"},
		{ID: "TKT-00001", Title: "seeded a"},
	}
	repo := NewMemoryTicketRepository(fixedClock, seed)

	next := newTicket("fresh")
	require.NoError(t, repo.Create(context.Background(), next))
	assert.Equal(t, "TKT-00003", next.ID)
}

func TestMemoryTicketRepositoryUpdate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (TicketRepository, *domain.Ticket) {
		repo := NewMemoryTicketRepository(fixedClock, nil)
		ticket := newTicket("target")
		require.NoError(t, repo.Create(ctx, ticket))
		return repo, ticket
	}

	t.Run("merges only supplied fields", func(t *testing.T) {
		repo, ticket := setup(t)
		status := domain.TicketStatusInProgress
		assignee := "Network Team"
		updated, err := repo.Update(ctx, ticket.ID, TicketPatch{Status: &status, AssignedTo: &assignee})
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
		assert.Equal(t, "Network Team", updated.AssignedTo)
		assert.Equal(t, ticket.Title, updated.Title)
	})

	t.Run("priority change never recomputes the deadline", func(t *testing.T) {
		repo, ticket := setup(t)
		originalDeadline := ticket.SLADeadline
		priority := domain.TicketPriorityCritical
		updated, err := repo.Update(ctx, ticket.ID, TicketPatch{Priority: &priority})
		require.NoError(t, err)
		assert.Equal(t, domain.TicketPriorityCritical, updated.Priority)
		assert.Equal(t, originalDeadline, updated.SLADeadline)
	})

	t.Run("unknown id leaves the collection untouched", func(t *testing.T) {
		repo, _ := setup(t)
		status := domain.TicketStatusClosed
		_, err := repo.Update(ctx, "TKT-99999", TicketPatch{Status: &status})
		assert.ErrorIs(t, err, ErrNotFound)

		tickets, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, domain.TicketStatusOpen, tickets[0].Status)
	})
}

func TestMemoryTicketRepositoryGetByID(t *testing.T) {
	repo := NewMemoryTicketRepository(fixedClock, nil)
	ctx := context.Background()
	ticket := newTicket("lookup")
	require.NoError(t, repo.Create(ctx, ticket))

	found, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.Title, found.Title)

	_, err = repo.GetByID(ctx, "TKT-99999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTicketRepositoryListWithFilter(t *testing.T) {
	repo := NewMemoryTicketRepository(fixedClock, nil)
	ctx := context.Background()

	hardware := newTicket("Laptop screen flickering")
	hardware.Category = domain.CategoryHardware
	hardware.Priority = domain.TicketPriorityHigh
	require.NoError(t, repo.Create(ctx, hardware))

	network := newTicket("Cannot connect to VPN")
	network.Category = domain.CategoryNetwork
	network.Status = domain.TicketStatusResolved
	require.NoError(t, repo.Create(ctx, network))

	t.Run("by category", func(t *testing.T) {
		got, err := repo.ListWithFilter(ctx, TicketFilter{Categories: []domain.TicketCategory{domain.CategoryHardware}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, hardware.ID, got[0].ID)
	})

	t.Run("by status", func(t *testing.T) {
		got, err := repo.ListWithFilter(ctx, TicketFilter{Statuses: []domain.TicketStatus{domain.TicketStatusResolved}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, network.ID, got[0].ID)
	})

	t.Run("by priority", func(t *testing.T) {
		got, err := repo.ListWithFilter(ctx, TicketFilter{Priorities: []domain.TicketPriority{domain.TicketPriorityHigh}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, hardware.ID, got[0].ID)
	})

	t.Run("search is case insensitive over id and text", func(t *testing.T) {
		term := "vpn"
		got, err := repo.ListWithFilter(ctx, TicketFilter{SearchTerm: &term})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, network.ID, got[0].ID)

		term = hardware.ID
		got, err = repo.ListWithFilter(ctx, TicketFilter{SearchTerm: &term})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, hardware.ID, got[0].ID)
	})

	t.Run("empty filter returns everything", func(t *testing.T) {
		got, err := repo.ListWithFilter(ctx, TicketFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestMemoryRoutingLogRepository(t *testing.T) {
	repo := NewMemoryRoutingLogRepository(nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.RoutingLog{ID: "LOG-TKT-00001", TicketID: "TKT-00001"}))
	require.NoError(t, repo.Create(ctx, &domain.RoutingLog{ID: "LOG-TKT-00002", TicketID: "TKT-00002"}))

	logs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "LOG-TKT-00002", logs[0].ID)
}

func TestMemoryNotificationRepository(t *testing.T) {
	repo := NewMemoryNotificationRepository(nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Notification{ID: "NOTIF-TKT-00001-slack", Channel: domain.ChannelSlack}))
	require.NoError(t, repo.Create(ctx, &domain.Notification{ID: "NOTIF-TKT-00001-jira", Channel: domain.ChannelJira}))

	notifications, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "NOTIF-TKT-00001-jira", notifications[0].ID)
}
