// Package seed generates the demo ticket batch loaded into the
// in-memory store on process start. The data is random but internally
// consistent: deadlines follow the SLA rules, breach flags are
// computed against the generation time, and routing logs plus
// notification pairs exist for every assigned ticket.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/sla"
)

// Data bundles everything the stores are seeded with.
type Data struct {
	Tickets       []domain.Ticket
	RoutingLogs   []domain.RoutingLog
	Notifications []domain.Notification
}

var seedUsers = []string{
	"john.doe@company.com",
	"jane.smith@company.com",
	"bob.wilson@company.com",
	"alice.chen@company.com",
}

var seedAgents = []string{
	"Support Team A",
	"Support Team B",
	"Network Team",
	"Security Team",
	"Hardware Team",
}

var seedTitles = map[domain.TicketCategory][]string{
	domain.CategoryHardware: {
		"Laptop screen flickering",
		"Keyboard keys not working",
		"Mouse not responding",
		"Monitor display issues",
		"Printer paper jam",
	},
	domain.CategorySoftware: {
		"Application crashes on startup",
		"Unable to install software update",
		"License activation failed",
		"Slow application performance",
		"Data sync issues",
	},
	domain.CategoryNetwork: {
		"Cannot connect to VPN",
		"Slow internet connection",
		"WiFi keeps disconnecting",
		"Cannot access shared drive",
		"Email not syncing",
	},
	domain.CategoryAccess: {
		"Password reset required",
		"Account locked out",
		"Need access to new system",
		"Permission denied error",
		"Two-factor authentication issues",
	},
	domain.CategoryOther: {
		"General inquiry",
		"Feature request",
		"Documentation needed",
		"Training request",
		"Feedback submission",
	},
}

// Generate builds a random batch of count tickets plus derived records.
// Ids are assigned in generation order and the batch is sorted
// newest-first afterwards, so the store can continue the sequence at
// count+1.
func Generate(count int, now time.Time, rng *rand.Rand) Data {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}

	categories := domain.Categories()
	priorities := domain.Priorities()
	statuses := domain.Statuses()

	tickets := make([]domain.Ticket, 0, count)
	for i := 0; i < count; i++ {
		category := categories[rng.Intn(len(categories))]
		priority := priorities[rng.Intn(len(priorities))]
		status := statuses[rng.Intn(len(statuses))]
		submittedAt := randomPastTime(now, 30, rng)
		deadline := sla.Deadline(submittedAt, priority)

		ticket := domain.Ticket{
			ID:          fmt.Sprintf("TKT-%05d", i+1),
			Title:       randomItem(seedTitles[category], rng),
			Description: fmt.Sprintf("Detailed description of the %s issue. User is experiencing problems and needs assistance.", category),
			Category:    category,
			Priority:    priority,
			Status:      status,
			SubmittedBy: randomItem(seedUsers, rng),
			SubmittedAt: submittedAt,
			SLADeadline: deadline,
			SLABreach:   sla.IsBreached(now, deadline, status),
			Confidence:  0.85 + rng.Float64()*0.15,
		}
		if status != domain.TicketStatusOpen {
			ticket.AssignedTo = randomItem(seedAgents, rng)
		}
		if status == domain.TicketStatusResolved || status == domain.TicketStatusClosed {
			resolvedAt := submittedAt.Add(time.Duration(1+rng.Intn(72)) * time.Hour)
			ticket.ResolvedAt = &resolvedAt
		}
		tickets = append(tickets, ticket)
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].SubmittedAt.After(tickets[j].SubmittedAt)
	})

	logs := make([]domain.RoutingLog, 0, len(tickets))
	notifications := make([]domain.Notification, 0, 2*len(tickets))
	for i := range tickets {
		t := &tickets[i]
		if t.AssignedTo == "" {
			continue
		}
		logs = append(logs, domain.RoutingLog{
			ID:         "LOG-" + t.ID,
			TicketID:   t.ID,
			Timestamp:  t.SubmittedAt,
			Action:     domain.RoutingActionAutoRouted,
			Category:   t.Category,
			Confidence: t.Confidence,
			AssignedTo: t.AssignedTo,
			Reasoning: fmt.Sprintf("Classified as %s with %d%% confidence based on ticket content analysis.",
				t.Category, int(math.Round(t.Confidence*100))),
		})
		notifications = append(notifications,
			domain.Notification{
				ID:        fmt.Sprintf("NOTIF-%s-slack", t.ID),
				TicketID:  t.ID,
				Channel:   domain.ChannelSlack,
				Recipient: t.AssignedTo,
				Message:   fmt.Sprintf("New ticket assigned: %s (%s priority)", t.Title, t.Priority),
				SentAt:    t.SubmittedAt,
				Status:    domain.NotificationSent,
			},
			domain.Notification{
				ID:        fmt.Sprintf("NOTIF-%s-jira", t.ID),
				TicketID:  t.ID,
				Channel:   domain.ChannelJira,
				Recipient: t.AssignedTo,
				Message:   fmt.Sprintf("Ticket %s created in Jira", t.ID),
				SentAt:    t.SubmittedAt,
				Status:    domain.NotificationSent,
			},
		)
	}

	return Data{Tickets: tickets, RoutingLogs: logs, Notifications: notifications}
}

func randomItem(items []string, rng *rand.Rand) string {
	return items[rng.Intn(len(items))]
}

func randomPastTime(now time.Time, daysBack int, rng *rand.Rand) time.Time {
	t := now.AddDate(0, 0, -rng.Intn(daysBack))
	return time.Date(t.Year(), t.Month(), t.Day(), rng.Intn(24), rng.Intn(60), 0, 0, t.Location())
}
