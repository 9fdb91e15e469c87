package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketCategory enumerates classification buckets.
type TicketCategory string

const (
	CategoryHardware TicketCategory = "hardware"
	CategorySoftware TicketCategory = "software"
	CategoryNetwork  TicketCategory = "network"
	CategoryAccess   TicketCategory = "access"
	CategoryOther    TicketCategory = "other"
)

// Categories lists every category in classification precedence order.
func Categories() []TicketCategory {
	return []TicketCategory{CategoryHardware, CategorySoftware, CategoryNetwork, CategoryAccess, CategoryOther}
}

// Priorities lists every priority from lowest to highest urgency.
func Priorities() []TicketPriority {
	return []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical}
}

// Statuses lists every lifecycle state.
func Statuses() []TicketStatus {
	return []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed}
}

// Ticket is the aggregate for support requests. Category, priority,
// confidence and the assigned team are derived once at intake by the
// classifier. SLADeadline is fixed at creation and never recomputed,
// even if priority is later edited. SLABreach is a snapshot that read
// paths refresh from the SLA engine.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Category    TicketCategory
	Priority    TicketPriority
	Status      TicketStatus
	SubmittedBy string
	SubmittedAt time.Time
	AssignedTo  string
	ResolvedAt  *time.Time
	SLADeadline time.Time
	SLABreach   bool
	Confidence  float64
}

// Terminal reports whether the ticket reached a state that exempts it
// from SLA breach evaluation.
func (t *Ticket) Terminal() bool {
	return t.Status == TicketStatusResolved || t.Status == TicketStatusClosed
}
