package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/service"
	"github.com/spec-kit/triage-service/internal/sla"
	apperrors "github.com/spec-kit/triage-service/pkg/errorutil"
)

// TicketsHandler manages ticket intake and table endpoints.
type TicketsHandler struct {
	service *service.TriageService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(triageService *service.TriageService) *TicketsHandler {
	return &TicketsHandler{service: triageService}
}

// Submit POST /api/tickets.
func (h *TicketsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Submit(c.UserContext(), req.Email, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.SubmitTicketResponse{
		TicketID:       result.Ticket.ID,
		Classification: classificationResponse(result.Classification),
	}})
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	input := parseTicketListQuery(c)
	tickets, err := h.service.ListTickets(c.UserContext(), input)
	if err != nil {
		return err
	}
	now := time.Now()
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i], now))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket, time.Now())})
}

// Update PATCH /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": *req.Status})
	}
	if req.Priority != nil && !validPriority(*req.Priority) {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": *req.Priority})
	}

	ticket, err := h.service.UpdateTicket(c.UserContext(), c.Params("id"), service.UpdateTicketInput{
		Status:     req.Status,
		Priority:   req.Priority,
		AssignedTo: req.AssignedTo,
		ResolvedAt: req.ResolvedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket, time.Now())})
}

func parseTicketListQuery(c *fiber.Ctx) service.TicketListInput {
	input := service.TicketListInput{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			input.Statuses = append(input.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		for _, part := range strings.Split(categoryStr, ",") {
			input.Categories = append(input.Categories, domain.TicketCategory(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			input.Priorities = append(input.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if search := c.Query("search"); search != "" {
		input.SearchTerm = &search
	}
	return input
}

func validStatus(status domain.TicketStatus) bool {
	for _, candidate := range domain.Statuses() {
		if candidate == status {
			return true
		}
	}
	return false
}

func validPriority(priority domain.TicketPriority) bool {
	for _, candidate := range domain.Priorities() {
		if candidate == priority {
			return true
		}
	}
	return false
}

func ticketResponse(ticket *domain.Ticket, now time.Time) dto.TicketResponse {
	status := sla.StatusAt(ticket, now)
	return dto.TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Category:    ticket.Category,
		Priority:    ticket.Priority,
		Status:      ticket.Status,
		SubmittedBy: ticket.SubmittedBy,
		SubmittedAt: ticket.SubmittedAt,
		AssignedTo:  ticket.AssignedTo,
		ResolvedAt:  ticket.ResolvedAt,
		SLADeadline: ticket.SLADeadline,
		SLABreach:   ticket.SLABreach,
		Confidence:  ticket.Confidence,
		SLA: dto.SLAStatusResponse{
			State:          string(status.State),
			HoursRemaining: status.HoursRemaining,
			PercentElapsed: status.PercentElapsed,
		},
	}
}

func classificationResponse(result domain.ClassificationResult) dto.ClassificationResponse {
	return dto.ClassificationResponse{
		Category:      result.Category,
		Priority:      result.Priority,
		Confidence:    result.Confidence,
		Reasoning:     result.Reasoning,
		SuggestedTeam: result.SuggestedTeam,
	}
}
