package classifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
)

func TestKeywordClassifierCategories(t *testing.T) {
	k := NewKeywordClassifier(0)
	ctx := context.Background()

	t.Run("hardware keyword wins with fixed confidence", func(t *testing.T) {
		result, err := k.Classify(ctx, "Printer not working", "The office printer refuses every job")
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryHardware, result.Category)
		assert.Equal(t, 0.95, result.Confidence)
		assert.Equal(t, "Hardware Team", result.SuggestedTeam)
	})

	t.Run("software keyword", func(t *testing.T) {
		result, err := k.Classify(ctx, "License activation failed", "Cannot activate my license key")
		require.NoError(t, err)
		assert.Equal(t, domain.CategorySoftware, result.Category)
		assert.Equal(t, 0.93, result.Confidence)
		assert.Equal(t, "Support Team A", result.SuggestedTeam)
	})

	t.Run("network keyword", func(t *testing.T) {
		result, err := k.Classify(ctx, "WiFi problems", "wifi drops every few minutes")
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryNetwork, result.Category)
		assert.Equal(t, 0.91, result.Confidence)
		assert.Equal(t, "Network Team", result.SuggestedTeam)
	})

	t.Run("access keyword", func(t *testing.T) {
		result, err := k.Classify(ctx, "Password reset", "I forgot my password")
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryAccess, result.Category)
		assert.Equal(t, 0.94, result.Confidence)
		assert.Equal(t, "Security Team", result.SuggestedTeam)
	})

	t.Run("hardware precedes software when both match", func(t *testing.T) {
		result, err := k.Classify(ctx, "Laptop crash", "my laptop makes the application crash")
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryHardware, result.Category)
		assert.Equal(t, 0.95, result.Confidence)
	})

	t.Run("no keyword falls back to other", func(t *testing.T) {
		result, err := k.Classify(ctx, "Desk chair wobbly", "the chair tilts to one side")
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryOther, result.Category)
		assert.Equal(t, domain.TicketPriorityMedium, result.Priority)
		assert.Equal(t, 0.85, result.Confidence)
		assert.Equal(t, "Support Team B", result.SuggestedTeam)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		result, err := k.Classify(ctx, "LAPTOP BROKEN", "SCREEN IS DARK")
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryHardware, result.Category)
	})
}

func TestKeywordClassifierPriorities(t *testing.T) {
	k := NewKeywordClassifier(0)
	ctx := context.Background()

	t.Run("critical precedes low when both match", func(t *testing.T) {
		result, err := k.Classify(ctx, "Urgent but minor", "urgent issue, though fairly minor")
		require.NoError(t, err)
		assert.Equal(t, domain.TicketPriorityCritical, result.Priority)
	})

	t.Run("high keyword", func(t *testing.T) {
		result, err := k.Classify(ctx, "Need this asap", "please handle asap")
		require.NoError(t, err)
		assert.Equal(t, domain.TicketPriorityHigh, result.Priority)
	})

	t.Run("low keyword", func(t *testing.T) {
		result, err := k.Classify(ctx, "Small request", "handle when possible")
		require.NoError(t, err)
		assert.Equal(t, domain.TicketPriorityLow, result.Priority)
	})

	t.Run("no urgency keyword defaults to medium", func(t *testing.T) {
		result, err := k.Classify(ctx, "Printer jam", "paper stuck in tray two")
		require.NoError(t, err)
		assert.Equal(t, domain.TicketPriorityMedium, result.Priority)
	})
}

func TestKeywordClassifierVPNExample(t *testing.T) {
	k := NewKeywordClassifier(0)

	result, err := k.Classify(context.Background(), "Cannot connect to VPN", "urgent, I am locked out")
	require.NoError(t, err)

	// "vpn" matches the network rule before the access rule ("locked")
	// is ever evaluated.
	assert.Equal(t, domain.CategoryNetwork, result.Category)
	assert.Equal(t, domain.TicketPriorityCritical, result.Priority)
	assert.Equal(t, 0.91, result.Confidence)
	assert.Equal(t, "Network Team", result.SuggestedTeam)
}

func TestKeywordClassifierReasoning(t *testing.T) {
	k := NewKeywordClassifier(0)

	result, err := k.Classify(context.Background(), "Cannot connect to VPN", "urgent, locked out")
	require.NoError(t, err)
	assert.Contains(t, result.Reasoning, "network category")
	assert.Contains(t, result.Reasoning, "Priority set to critical")
	assert.Contains(t, result.Reasoning, "Network Team")
}

func TestKeywordClassifierDelay(t *testing.T) {
	t.Run("canceled context aborts the wait", func(t *testing.T) {
		k := NewKeywordClassifier(time.Minute)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := k.Classify(ctx, "Printer jam", "paper stuck")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("delay elapses before returning", func(t *testing.T) {
		k := NewKeywordClassifier(20 * time.Millisecond)
		start := time.Now()
		_, err := k.Classify(context.Background(), "Printer jam", "paper stuck")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})
}
