package domain

import "time"

// NotificationChannel identifies a downstream integration.
type NotificationChannel string

const (
	ChannelSlack NotificationChannel = "slack"
	ChannelJira  NotificationChannel = "jira"
	ChannelEmail NotificationChannel = "email"
)

// NotificationStatus records delivery outcome. There is no retry or
// delivery confirmation; the status is written once.
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// Notification is an immutable delivery record. Routing a ticket
// produces one per downstream integration (slack and jira).
type Notification struct {
	ID        string
	TicketID  string
	Channel   NotificationChannel
	Recipient string
	Message   string
	SentAt    time.Time
	Status    NotificationStatus
}
