package repository

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// ErrNotFound signals an absent record for lookups and updates by id.
var ErrNotFound = errors.New("record not found")

// TicketFilter captures dashboard table filters.
type TicketFilter struct {
	Statuses   []domain.TicketStatus
	Categories []domain.TicketCategory
	Priorities []domain.TicketPriority
	SearchTerm *string
}

// TicketPatch is a partial field set merged over an existing ticket.
// The SLA deadline is deliberately untouched even when Priority is
// present: deadlines are locked at intake.
type TicketPatch struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	AssignedTo *string
	ResolvedAt *time.Time
}

// TicketRepository encapsulates the ticket collection, ordered
// newest-first by submission time. Create assigns the next sequential
// TKT-NNNNN id, stamps the submission time and computes the SLA
// deadline from the supplied priority.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, id string, patch TicketPatch) (*domain.Ticket, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

// RoutingLogRepository stores immutable routing audit records.
type RoutingLogRepository interface {
	Create(ctx context.Context, log *domain.RoutingLog) error
	List(ctx context.Context) ([]domain.RoutingLog, error)
}

// NotificationRepository stores immutable delivery records.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	List(ctx context.Context) ([]domain.Notification, error)
}
