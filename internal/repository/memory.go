package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/sla"
)

// memoryTicketRepository is the default process-lifetime store. A
// single mutex guards the collection because fiber serves requests
// concurrently.
type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
	nextSeq int
	now     func() time.Time
}

// NewMemoryTicketRepository builds an in-memory store, optionally
// pre-populated with seed tickets (assumed already sorted newest-first
// with sequential ids).
func NewMemoryTicketRepository(now func() time.Time, seed []domain.Ticket) TicketRepository {
	if now == nil {
		now = time.Now
	}
	tickets := make([]domain.Ticket, len(seed))
	copy(tickets, seed)
	return &memoryTicketRepository{
		tickets: tickets,
		nextSeq: len(seed) + 1,
		now:     now,
	}
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = fmt.Sprintf("TKT-%05d", r.nextSeq)
	r.nextSeq++
	ticket.SubmittedAt = r.now()
	ticket.SLADeadline = sla.Deadline(ticket.SubmittedAt, ticket.Priority)
	ticket.SLABreach = false

	r.tickets = append([]domain.Ticket{*ticket}, r.tickets...)
	return nil
}

func (r *memoryTicketRepository) Update(_ context.Context, id string, patch TicketPatch) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tickets {
		if r.tickets[i].ID != id {
			continue
		}
		t := &r.tickets[i]
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.AssignedTo != nil {
			t.AssignedTo = *patch.AssignedTo
		}
		if patch.ResolvedAt != nil {
			resolvedAt := *patch.ResolvedAt
			t.ResolvedAt = &resolvedAt
		}
		updated := *t
		return &updated, nil
	}
	return nil, ErrNotFound
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.tickets {
		if r.tickets[i].ID == id {
			ticket := r.tickets[i]
			return &ticket, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryTicketRepository) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Ticket, len(r.tickets))
	copy(out, r.tickets)
	return out, nil
}

func (r *memoryTicketRepository) ListWithFilter(_ context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Ticket, 0, len(r.tickets))
	for i := range r.tickets {
		if matchesFilter(&r.tickets[i], filter) {
			out = append(out, r.tickets[i])
		}
	}
	return out, nil
}

func matchesFilter(t *domain.Ticket, filter TicketFilter) bool {
	if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, t.Status) {
		return false
	}
	if len(filter.Categories) > 0 && !containsCategory(filter.Categories, t.Category) {
		return false
	}
	if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, t.Priority) {
		return false
	}
	if filter.SearchTerm != nil {
		term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
		if term != "" {
			haystack := strings.ToLower(t.ID + " " + t.Title + " " + t.Description + " " + t.SubmittedBy)
			if !strings.Contains(haystack, term) {
				return false
			}
		}
	}
	return true
}

func containsStatus(values []domain.TicketStatus, v domain.TicketStatus) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsCategory(values []domain.TicketCategory, v domain.TicketCategory) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsPriority(values []domain.TicketPriority, v domain.TicketPriority) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// memoryRoutingLogRepository keeps routing audit records in memory,
// newest-first.
type memoryRoutingLogRepository struct {
	mu   sync.RWMutex
	logs []domain.RoutingLog
}

// NewMemoryRoutingLogRepository builds the store, optionally seeded.
func NewMemoryRoutingLogRepository(seed []domain.RoutingLog) RoutingLogRepository {
	logs := make([]domain.RoutingLog, len(seed))
	copy(logs, seed)
	return &memoryRoutingLogRepository{logs: logs}
}

func (r *memoryRoutingLogRepository) Create(_ context.Context, log *domain.RoutingLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append([]domain.RoutingLog{*log}, r.logs...)
	return nil
}

func (r *memoryRoutingLogRepository) List(_ context.Context) ([]domain.RoutingLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoutingLog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

// memoryNotificationRepository keeps delivery records in memory,
// newest-first.
type memoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []domain.Notification
}

// NewMemoryNotificationRepository builds the store, optionally seeded.
func NewMemoryNotificationRepository(seed []domain.Notification) NotificationRepository {
	notifications := make([]domain.Notification, len(seed))
	copy(notifications, seed)
	return &memoryNotificationRepository{notifications: notifications}
}

func (r *memoryNotificationRepository) Create(_ context.Context, notification *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append([]domain.Notification{*notification}, r.notifications...)
	return nil
}

func (r *memoryNotificationRepository) List(_ context.Context) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out, nil
}
