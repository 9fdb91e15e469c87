package seed

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/sla"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	data := Generate(50, now, rand.New(rand.NewSource(1)))

	t.Run("produces the requested ticket count", func(t *testing.T) {
		assert.Len(t, data.Tickets, 50)
	})

	t.Run("ids cover the sequence exactly once", func(t *testing.T) {
		seen := map[string]bool{}
		for _, ticket := range data.Tickets {
			assert.Regexp(t, `^TKT-\d{5}$`, ticket.ID)
			assert.False(t, seen[ticket.ID], "duplicate id %s", ticket.ID)
			seen[ticket.ID] = true
		}
	})

	t.Run("sorted newest first", func(t *testing.T) {
		for i := 1; i < len(data.Tickets); i++ {
			assert.False(t, data.Tickets[i-1].SubmittedAt.Before(data.Tickets[i].SubmittedAt))
		}
	})

	t.Run("tickets are internally consistent", func(t *testing.T) {
		for _, ticket := range data.Tickets {
			assert.Equal(t, sla.Deadline(ticket.SubmittedAt, ticket.Priority), ticket.SLADeadline)
			assert.Equal(t, sla.IsBreached(now, ticket.SLADeadline, ticket.Status), ticket.SLABreach)
			assert.GreaterOrEqual(t, ticket.Confidence, 0.85)
			assert.Less(t, ticket.Confidence, 1.0)
			assert.NotEmpty(t, ticket.Title)
			assert.NotEmpty(t, ticket.SubmittedBy)

			if ticket.Status == domain.TicketStatusOpen {
				assert.Empty(t, ticket.AssignedTo)
			} else {
				assert.NotEmpty(t, ticket.AssignedTo)
			}

			if ticket.Terminal() {
				require.NotNil(t, ticket.ResolvedAt)
				assert.True(t, ticket.ResolvedAt.After(ticket.SubmittedAt))
			} else {
				assert.Nil(t, ticket.ResolvedAt)
			}
		}
	})

	t.Run("assigned tickets carry a routing log and a notification pair", func(t *testing.T) {
		assigned := 0
		for _, ticket := range data.Tickets {
			if ticket.AssignedTo != "" {
				assigned++
			}
		}
		require.Len(t, data.RoutingLogs, assigned)
		require.Len(t, data.Notifications, 2*assigned)

		logByTicket := map[string]domain.RoutingLog{}
		for _, logEntry := range data.RoutingLogs {
			logByTicket[logEntry.TicketID] = logEntry
		}
		notifByID := map[string]domain.Notification{}
		for _, n := range data.Notifications {
			notifByID[n.ID] = n
		}

		for _, ticket := range data.Tickets {
			if ticket.AssignedTo == "" {
				continue
			}
			logEntry, ok := logByTicket[ticket.ID]
			require.True(t, ok, "missing routing log for %s", ticket.ID)
			assert.Equal(t, "LOG-"+ticket.ID, logEntry.ID)
			assert.Equal(t, domain.RoutingActionAutoRouted, logEntry.Action)
			assert.Equal(t, ticket.AssignedTo, logEntry.AssignedTo)
			assert.Contains(t, logEntry.Reasoning, string(ticket.Category))

			slack, ok := notifByID["NOTIF-"+ticket.ID+"-slack"]
			require.True(t, ok, "missing slack notification for %s", ticket.ID)
			assert.Equal(t, domain.ChannelSlack, slack.Channel)
			assert.Contains(t, slack.Message, ticket.Title)

			jira, ok := notifByID["NOTIF-"+ticket.ID+"-jira"]
			require.True(t, ok, "missing jira notification for %s", ticket.ID)
			assert.Equal(t, domain.ChannelJira, jira.Channel)
			assert.Contains(t, jira.Message, ticket.ID)
		}
	})
}

func TestGenerateWithNilRNG(t *testing.T) {
	data := Generate(5, time.Now(), nil)
	assert.Len(t, data.Tickets, 5)
}
