package dto

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// SubmitTicketRequest payload.
type SubmitTicketRequest struct {
	Email       string `json:"email"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ClassifyRequest payload for the try-it endpoint.
type ClassifyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTicketRequest carries a partial field set.
type UpdateTicketRequest struct {
	Status     *domain.TicketStatus   `json:"status"`
	Priority   *domain.TicketPriority `json:"priority"`
	AssignedTo *string                `json:"assignedTo"`
	ResolvedAt *time.Time             `json:"resolvedAt"`
}

// ClassificationResponse mirrors the classifier output.
type ClassificationResponse struct {
	Category      domain.TicketCategory `json:"category"`
	Priority      domain.TicketPriority `json:"priority"`
	Confidence    float64               `json:"confidence"`
	Reasoning     string                `json:"reasoning"`
	SuggestedTeam string                `json:"suggestedTeam"`
}

// SubmitTicketResponse returns the new id and the classification.
type SubmitTicketResponse struct {
	TicketID       string                 `json:"ticketId"`
	Classification ClassificationResponse `json:"classification"`
}

// SLAStatusResponse is the per-ticket deadline projection.
type SLAStatusResponse struct {
	State          string  `json:"state"`
	HoursRemaining float64 `json:"hoursRemaining"`
	PercentElapsed float64 `json:"percentElapsed"`
}

// TicketResponse is the full ticket view for tables and detail pages.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	SubmittedBy string                `json:"submittedBy"`
	SubmittedAt time.Time             `json:"submittedAt"`
	AssignedTo  string                `json:"assignedTo,omitempty"`
	ResolvedAt  *time.Time            `json:"resolvedAt,omitempty"`
	SLADeadline time.Time             `json:"slaDeadline"`
	SLABreach   bool                  `json:"slaBreach"`
	Confidence  float64               `json:"confidence"`
	SLA         SLAStatusResponse     `json:"sla"`
}

// RoutingLogResponse is one routing audit entry.
type RoutingLogResponse struct {
	ID         string                `json:"id"`
	TicketID   string                `json:"ticketId"`
	Timestamp  time.Time             `json:"timestamp"`
	Action     string                `json:"action"`
	Category   domain.TicketCategory `json:"category"`
	Confidence float64               `json:"confidence"`
	AssignedTo string                `json:"assignedTo"`
	Reasoning  string                `json:"reasoning"`
}

// NotificationResponse is one delivery record.
type NotificationResponse struct {
	ID        string                     `json:"id"`
	TicketID  string                     `json:"ticketId"`
	Channel   domain.NotificationChannel `json:"type"`
	Recipient string                     `json:"recipient"`
	Message   string                     `json:"message"`
	SentAt    time.Time                  `json:"sentAt"`
	Status    domain.NotificationStatus  `json:"status"`
}

// MetricsResponse is the SLA analytics aggregate.
type MetricsResponse struct {
	TotalTickets          int                            `json:"totalTickets"`
	BreachedTickets       int                            `json:"breachedTickets"`
	AverageResolutionTime float64                        `json:"averageResolutionTime"`
	RoutingAccuracy       float64                        `json:"routingAccuracy"`
	TicketsByCategory     map[domain.TicketCategory]int  `json:"ticketsByCategory"`
	TicketsByPriority     map[domain.TicketPriority]int  `json:"ticketsByPriority"`
}
