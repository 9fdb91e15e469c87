// Package sla implements the deadline, breach and aggregation rules for
// ticket service-level agreements. All functions are pure; "now" is
// always passed in so read paths can recompute rather than cache.
package sla

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// RoutingAccuracy is a fixed reported figure, not computed from any
// ground truth. Placeholder until manual classifications exist to
// compare against.
const RoutingAccuracy = 0.98

var deadlineOffsets = map[domain.TicketPriority]time.Duration{
	domain.TicketPriorityCritical: 4 * time.Hour,
	domain.TicketPriorityHigh:     8 * time.Hour,
	domain.TicketPriorityMedium:   24 * time.Hour,
	domain.TicketPriorityLow:      48 * time.Hour,
}

// Deadline returns the resolution deadline for a ticket submitted at
// the given time. Unknown priorities get the widest window.
func Deadline(submittedAt time.Time, priority domain.TicketPriority) time.Time {
	offset, ok := deadlineOffsets[priority]
	if !ok {
		offset = deadlineOffsets[domain.TicketPriorityLow]
	}
	return submittedAt.Add(offset)
}

// IsBreached reports whether a ticket in the given status has passed
// its deadline. Resolved and closed tickets never breach; the boundary
// is exclusive, so a ticket exactly at its deadline is not breached.
func IsBreached(now, deadline time.Time, status domain.TicketStatus) bool {
	if status == domain.TicketStatusResolved || status == domain.TicketStatusClosed {
		return false
	}
	return now.After(deadline)
}

// State buckets a ticket's position against its deadline.
type State string

const (
	StateOnTrack  State = "on-track"
	StateAtRisk   State = "at-risk"
	StateBreached State = "breached"
)

// Status is the per-ticket SLA projection shown in table views.
type Status struct {
	State          State
	HoursRemaining float64 // negative once past the deadline
	PercentElapsed float64 // clamped to [0, 100]
}

// StatusAt computes the SLA projection for a ticket at the given time.
// A zero-width window (deadline == submittedAt) counts as fully elapsed.
func StatusAt(ticket *domain.Ticket, now time.Time) Status {
	total := ticket.SLADeadline.Sub(ticket.SubmittedAt)
	elapsed := now.Sub(ticket.SubmittedAt)

	percent := 100.0
	if total > 0 {
		percent = float64(elapsed) / float64(total) * 100
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
	}

	state := StateOnTrack
	switch {
	case IsBreached(now, ticket.SLADeadline, ticket.Status):
		state = StateBreached
	case percent > 75:
		state = StateAtRisk
	}

	return Status{
		State:          state,
		HoursRemaining: ticket.SLADeadline.Sub(now).Hours(),
		PercentElapsed: percent,
	}
}

// Aggregate reduces a ticket collection to SLAMetrics in one pass. It
// is deterministic over its input and keeps no incremental state;
// callers refresh breach flags before aggregating.
func Aggregate(tickets []domain.Ticket) domain.SLAMetrics {
	byCategory := make(map[domain.TicketCategory]int, len(domain.Categories()))
	for _, c := range domain.Categories() {
		byCategory[c] = 0
	}
	byPriority := make(map[domain.TicketPriority]int, len(domain.Priorities()))
	for _, p := range domain.Priorities() {
		byPriority[p] = 0
	}

	breached := 0
	resolvedCount := 0
	var totalResolution time.Duration
	for i := range tickets {
		t := &tickets[i]
		if t.SLABreach {
			breached++
		}
		if t.ResolvedAt != nil {
			resolvedCount++
			totalResolution += t.ResolvedAt.Sub(t.SubmittedAt)
		}
		byCategory[t.Category]++
		byPriority[t.Priority]++
	}

	avgResolution := 0.0
	if resolvedCount > 0 {
		avgResolution = (totalResolution / time.Duration(resolvedCount)).Hours()
	}

	return domain.SLAMetrics{
		TotalTickets:          len(tickets),
		BreachedTickets:       breached,
		AverageResolutionTime: avgResolution,
		RoutingAccuracy:       RoutingAccuracy,
		TicketsByCategory:     byCategory,
		TicketsByPriority:     byPriority,
	}
}
