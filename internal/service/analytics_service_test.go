package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/repository"
)

func TestAnalyticsMetrics(t *testing.T) {
	ctx := context.Background()
	now := testNow
	clock := func() time.Time { return now }

	resolvedAt := testNow.Add(-22 * time.Hour)
	seed := []domain.Ticket{
		{
			ID:          "TKT-00002",
			Category:    domain.CategoryNetwork,
			Priority:    domain.TicketPriorityCritical,
			Status:      domain.TicketStatusOpen,
			SubmittedAt: testNow.Add(-6 * time.Hour),
			SLADeadline: testNow.Add(-2 * time.Hour),
		},
		{
			ID:          "TKT-00001",
			Category:    domain.CategoryHardware,
			Priority:    domain.TicketPriorityMedium,
			Status:      domain.TicketStatusResolved,
			SubmittedAt: testNow.Add(-24 * time.Hour),
			SLADeadline: testNow,
			ResolvedAt:  &resolvedAt,
		},
	}
	tickets := repository.NewMemoryTicketRepository(clock, seed)
	svc := NewAnalyticsService(tickets,
		repository.NewMemoryRoutingLogRepository(nil),
		repository.NewMemoryNotificationRepository(nil),
		clock)

	metrics, err := svc.Metrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, metrics.TotalTickets)
	// the open critical ticket is past its deadline, the resolved one is exempt
	assert.Equal(t, 1, metrics.BreachedTickets)
	assert.InDelta(t, 2.0, metrics.AverageResolutionTime, 1e-9)
	assert.Equal(t, 0.98, metrics.RoutingAccuracy)
	assert.Equal(t, 1, metrics.TicketsByCategory[domain.CategoryNetwork])
	assert.Equal(t, 1, metrics.TicketsByCategory[domain.CategoryHardware])
	assert.Equal(t, 0, metrics.TicketsByCategory[domain.CategoryAccess])
}
