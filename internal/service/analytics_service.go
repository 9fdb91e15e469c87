package service

import (
	"context"
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/repository"
	"github.com/spec-kit/triage-service/internal/sla"
	apperrors "github.com/spec-kit/triage-service/pkg/errorutil"
)

// AnalyticsService produces dashboard read projections. All reads are
// synchronous snapshots; metrics are re-derived from the collection on
// every call rather than kept incrementally.
type AnalyticsService struct {
	tickets       repository.TicketRepository
	routingLogs   repository.RoutingLogRepository
	notifications repository.NotificationRepository
	clock         func() time.Time
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(tickets repository.TicketRepository, routingLogs repository.RoutingLogRepository, notifications repository.NotificationRepository, clock func() time.Time) *AnalyticsService {
	if clock == nil {
		clock = time.Now
	}
	return &AnalyticsService{
		tickets:       tickets,
		routingLogs:   routingLogs,
		notifications: notifications,
		clock:         clock,
	}
}

// Metrics aggregates SLA metrics over the full ticket collection,
// refreshing breach flags first so the counts reflect the current time.
func (s *AnalyticsService) Metrics(ctx context.Context) (domain.SLAMetrics, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return domain.SLAMetrics{}, apperrors.MapError(err)
	}
	now := s.clock()
	for i := range tickets {
		tickets[i].SLABreach = sla.IsBreached(now, tickets[i].SLADeadline, tickets[i].Status)
	}
	return sla.Aggregate(tickets), nil
}

// RoutingLogs returns the routing audit feed, newest-first.
func (s *AnalyticsService) RoutingLogs(ctx context.Context) ([]domain.RoutingLog, error) {
	logs, err := s.routingLogs.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return logs, nil
}

// Notifications returns the delivery record feed, newest-first.
func (s *AnalyticsService) Notifications(ctx context.Context) ([]domain.Notification, error) {
	notifications, err := s.notifications.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return notifications, nil
}
