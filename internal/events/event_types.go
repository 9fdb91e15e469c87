package events

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketSubmitted EventType = "ticket_submitted"
	EventTicketRouted    EventType = "ticket_routed"
	EventTicketUpdated   EventType = "ticket_updated"
)

// AllEventTypes lists every event identifier, for subscribers that
// mirror the whole stream.
func AllEventTypes() []EventType {
	return []EventType{EventTicketSubmitted, EventTicketRouted, EventTicketUpdated}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketSubmittedPayload payload.
type TicketSubmittedPayload struct {
	Title       string                `json:"title"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Confidence  float64               `json:"confidence"`
	SubmittedBy string                `json:"submitted_by"`
}

// TicketRoutedPayload payload.
type TicketRoutedPayload struct {
	Title      string                `json:"title"`
	Category   domain.TicketCategory `json:"category"`
	Priority   domain.TicketPriority `json:"priority"`
	Confidence float64               `json:"confidence"`
	AssignedTo string                `json:"assigned_to"`
	Reasoning  string                `json:"reasoning"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Status     *domain.TicketStatus   `json:"status,omitempty"`
	Priority   *domain.TicketPriority `json:"priority,omitempty"`
	AssignedTo *string                `json:"assigned_to,omitempty"`
}
