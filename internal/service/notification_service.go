package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/repository"
)

// NotificationService records delivery stubs for routed tickets. Each
// routing decision produces one record per downstream integration
// (slack and jira). There is no retry or delivery confirmation.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketRouted, n.handleTicketRouted)
}

func (n *NotificationService) handleTicketRouted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketRoutedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for ticket_routed", zap.String("event_id", event.ID))
		return nil
	}

	records := []domain.Notification{
		{
			ID:        fmt.Sprintf("NOTIF-%s-slack", event.TicketID),
			TicketID:  event.TicketID,
			Channel:   domain.ChannelSlack,
			Recipient: payload.AssignedTo,
			Message:   fmt.Sprintf("New ticket assigned: %s (%s priority)", payload.Title, payload.Priority),
			SentAt:    event.Timestamp,
			Status:    domain.NotificationSent,
		},
		{
			ID:        fmt.Sprintf("NOTIF-%s-jira", event.TicketID),
			TicketID:  event.TicketID,
			Channel:   domain.ChannelJira,
			Recipient: payload.AssignedTo,
			Message:   fmt.Sprintf("Ticket %s created in Jira", event.TicketID),
			SentAt:    event.Timestamp,
			Status:    domain.NotificationSent,
		},
	}

	for i := range records {
		if err := n.notifications.Create(ctx, &records[i]); err != nil {
			n.logger.Error("record notification",
				zap.String("ticket_id", event.TicketID),
				zap.String("channel", string(records[i].Channel)),
				zap.Error(err))
		}
	}
	return nil
}
