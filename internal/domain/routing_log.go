package domain

import "time"

// RoutingActionAutoRouted is the only routing action the service emits today.
const RoutingActionAutoRouted = "auto_routed"

// RoutingLog is an immutable audit record of one auto-routing decision.
// It carries a denormalized copy of the classification at the time the
// ticket was routed and is never referenced back from the ticket.
type RoutingLog struct {
	ID         string
	TicketID   string
	Timestamp  time.Time
	Action     string
	Category   TicketCategory
	Confidence float64
	AssignedTo string
	Reasoning  string
}
