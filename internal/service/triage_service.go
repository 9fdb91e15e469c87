package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/classifier"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/repository"
	"github.com/spec-kit/triage-service/internal/sla"
	apperrors "github.com/spec-kit/triage-service/pkg/errorutil"
)

// TriageService coordinates the intake workflow: classify, create the
// ticket, record the routing decision, and fan out events.
type TriageService struct {
	tickets     repository.TicketRepository
	routingLogs repository.RoutingLogRepository
	classifier  classifier.Classifier
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	clock       func() time.Time
}

// TriageDependencies bundles collaborators for the service.
type TriageDependencies struct {
	TicketRepo     repository.TicketRepository
	RoutingLogRepo repository.RoutingLogRepository
	Classifier     classifier.Classifier
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Clock          func() time.Time
}

// SubmitResult is returned to the caller after a successful intake.
type SubmitResult struct {
	Ticket         *domain.Ticket
	Classification domain.ClassificationResult
}

// UpdateTicketInput describes a partial ticket update.
type UpdateTicketInput struct {
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
	AssignedTo *string
	ResolvedAt *time.Time
}

// TicketListInput describes dashboard table filters.
type TicketListInput struct {
	Statuses   []domain.TicketStatus
	Categories []domain.TicketCategory
	Priorities []domain.TicketPriority
	SearchTerm *string
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TriageService{
		tickets:     deps.TicketRepo,
		routingLogs: deps.RoutingLogRepo,
		classifier:  deps.Classifier,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
		clock:       clock,
	}
}

// Submit validates the request, classifies it and creates the ticket.
// Creation is all-or-nothing: a classification failure produces no
// ticket record.
func (s *TriageService) Submit(ctx context.Context, email, title, description string) (*SubmitResult, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}

	classification, err := s.classifier.Classify(ctx, title, description)
	if err != nil {
		s.logger.Error("classification failed", zap.Error(err))
		return nil, apperrors.NewClassificationFailure(err)
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Category:    classification.Category,
		Priority:    classification.Priority,
		Status:      domain.TicketStatusOpen,
		SubmittedBy: strings.TrimSpace(email),
		AssignedTo:  classification.SuggestedTeam,
		Confidence:  classification.Confidence,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.recordRouting(ctx, ticket); err != nil {
		// the ticket exists; a failed audit write is logged, not surfaced
		s.logger.Error("record routing decision", zap.String("ticket_id", ticket.ID), zap.Error(err))
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketSubmitted,
		TicketID: ticket.ID,
		Payload: events.TicketSubmittedPayload{
			Title:       ticket.Title,
			Category:    ticket.Category,
			Priority:    ticket.Priority,
			Confidence:  ticket.Confidence,
			SubmittedBy: ticket.SubmittedBy,
		},
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketRouted,
		TicketID: ticket.ID,
		Payload: events.TicketRoutedPayload{
			Title:      ticket.Title,
			Category:   ticket.Category,
			Priority:   ticket.Priority,
			Confidence: ticket.Confidence,
			AssignedTo: ticket.AssignedTo,
			Reasoning:  classification.Reasoning,
		},
	})

	s.logger.Info("ticket submitted",
		zap.String("ticket_id", ticket.ID),
		zap.String("category", string(ticket.Category)),
		zap.String("priority", string(ticket.Priority)),
		zap.String("assigned_to", ticket.AssignedTo))

	return &SubmitResult{Ticket: ticket, Classification: classification}, nil
}

// Classify runs the classifier without creating a ticket, for the
// "try it" endpoint.
func (s *TriageService) Classify(ctx context.Context, title, description string) (domain.ClassificationResult, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return domain.ClassificationResult{}, apperrors.NewValidationError("title and description are required", nil)
	}
	result, err := s.classifier.Classify(ctx, title, description)
	if err != nil {
		s.logger.Error("classification failed", zap.Error(err))
		return domain.ClassificationResult{}, apperrors.NewClassificationFailure(err)
	}
	return result, nil
}

// ListTickets returns tickets newest-first with breach flags refreshed
// against the current time.
func (s *TriageService) ListTickets(ctx context.Context, input TicketListInput) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		Statuses:   input.Statuses,
		Categories: input.Categories,
		Priorities: input.Priorities,
		SearchTerm: input.SearchTerm,
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	now := s.clock()
	for i := range tickets {
		tickets[i].SLABreach = sla.IsBreached(now, tickets[i].SLADeadline, tickets[i].Status)
	}
	return tickets, nil
}

// GetTicket fetches one ticket with a refreshed breach flag.
func (s *TriageService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	ticket.SLABreach = sla.IsBreached(s.clock(), ticket.SLADeadline, ticket.Status)
	return ticket, nil
}

// UpdateTicket merges a partial field set over an existing ticket.
// Moving a ticket into a terminal status stamps ResolvedAt unless the
// caller supplied one. The SLA deadline is never recomputed.
func (s *TriageService) UpdateTicket(ctx context.Context, id string, input UpdateTicketInput) (*domain.Ticket, error) {
	patch := repository.TicketPatch{
		Status:     input.Status,
		Priority:   input.Priority,
		AssignedTo: input.AssignedTo,
		ResolvedAt: input.ResolvedAt,
	}

	if input.Status != nil && patch.ResolvedAt == nil &&
		(*input.Status == domain.TicketStatusResolved || *input.Status == domain.TicketStatusClosed) {
		existing, err := s.tickets.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
			}
			return nil, apperrors.MapError(err)
		}
		if existing.ResolvedAt == nil {
			now := s.clock()
			patch.ResolvedAt = &now
		}
	}

	ticket, err := s.tickets.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	ticket.SLABreach = sla.IsBreached(s.clock(), ticket.SLADeadline, ticket.Status)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			Status:     input.Status,
			Priority:   input.Priority,
			AssignedTo: input.AssignedTo,
		},
	})
	return ticket, nil
}

func (s *TriageService) recordRouting(ctx context.Context, ticket *domain.Ticket) error {
	log := &domain.RoutingLog{
		ID:         "LOG-" + ticket.ID,
		TicketID:   ticket.ID,
		Timestamp:  ticket.SubmittedAt,
		Action:     domain.RoutingActionAutoRouted,
		Category:   ticket.Category,
		Confidence: ticket.Confidence,
		AssignedTo: ticket.AssignedTo,
		Reasoning: fmt.Sprintf("Classified as %s with %d%% confidence based on ticket content analysis.",
			ticket.Category, int(math.Round(ticket.Confidence*100))),
	}
	return s.routingLogs.Create(ctx, log)
}

func (s *TriageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
