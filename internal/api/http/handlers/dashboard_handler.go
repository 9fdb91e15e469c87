package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/service"
)

// DashboardHandler serves the analytics read projections.
type DashboardHandler struct {
	analytics *service.AnalyticsService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(analytics *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

// Metrics GET /api/metrics.
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.analytics.Metrics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MetricsResponse{
		TotalTickets:          metrics.TotalTickets,
		BreachedTickets:       metrics.BreachedTickets,
		AverageResolutionTime: metrics.AverageResolutionTime,
		RoutingAccuracy:       metrics.RoutingAccuracy,
		TicketsByCategory:     metrics.TicketsByCategory,
		TicketsByPriority:     metrics.TicketsByPriority,
	}})
}

// RoutingLogs GET /api/routing-logs.
func (h *DashboardHandler) RoutingLogs(c *fiber.Ctx) error {
	logs, err := h.analytics.RoutingLogs(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.RoutingLogResponse, 0, len(logs))
	for _, log := range logs {
		items = append(items, dto.RoutingLogResponse{
			ID:         log.ID,
			TicketID:   log.TicketID,
			Timestamp:  log.Timestamp,
			Action:     log.Action,
			Category:   log.Category,
			Confidence: log.Confidence,
			AssignedTo: log.AssignedTo,
			Reasoning:  log.Reasoning,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Notifications GET /api/notifications.
func (h *DashboardHandler) Notifications(c *fiber.Ctx) error {
	notifications, err := h.analytics.Notifications(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			TicketID:  n.TicketID,
			Channel:   n.Channel,
			Recipient: n.Recipient,
			Message:   n.Message,
			SentAt:    n.SentAt,
			Status:    n.Status,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
