package classifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// Rule order is significant: the first matching pattern wins, so text
// mentioning both hardware and software terms classifies as hardware.
var categoryRules = []struct {
	pattern    *regexp.Regexp
	category   domain.TicketCategory
	confidence float64
}{
	{regexp.MustCompile(`laptop|keyboard|mouse|monitor|printer|hardware|screen|device`), domain.CategoryHardware, 0.95},
	{regexp.MustCompile(`software|application|app|install|update|crash|bug|license`), domain.CategorySoftware, 0.93},
	{regexp.MustCompile(`network|vpn|internet|wifi|connection|email|sync`), domain.CategoryNetwork, 0.91},
	{regexp.MustCompile(`password|access|login|account|permission|authentication|locked`), domain.CategoryAccess, 0.94},
}

var priorityRules = []struct {
	pattern  *regexp.Regexp
	priority domain.TicketPriority
}{
	{regexp.MustCompile(`urgent|critical|emergency|down|outage|cannot work`), domain.TicketPriorityCritical},
	{regexp.MustCompile(`important|asap|high priority|blocking`), domain.TicketPriorityHigh},
	{regexp.MustCompile(`minor|low priority|when possible`), domain.TicketPriorityLow},
}

var teamByCategory = map[domain.TicketCategory]string{
	domain.CategoryHardware: "Hardware Team",
	domain.CategorySoftware: "Support Team A",
	domain.CategoryNetwork:  "Network Team",
	domain.CategoryAccess:   "Security Team",
	domain.CategoryOther:    "Support Team B",
}

const fallbackConfidence = 0.85

// KeywordClassifier classifies tickets with ordered keyword patterns.
// It stands in for an external inference call; the configured delay
// models that call's latency.
type KeywordClassifier struct {
	delay time.Duration
}

// NewKeywordClassifier builds the classifier with the given artificial delay.
func NewKeywordClassifier(delay time.Duration) *KeywordClassifier {
	return &KeywordClassifier{delay: delay}
}

// Classify is total over its inputs; the only failure mode is context
// cancellation while waiting out the artificial delay.
func (k *KeywordClassifier) Classify(ctx context.Context, title, description string) (domain.ClassificationResult, error) {
	if k.delay > 0 {
		timer := time.NewTimer(k.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.ClassificationResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	text := strings.ToLower(title + " " + description)

	category := domain.CategoryOther
	confidence := fallbackConfidence
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			category = rule.category
			confidence = rule.confidence
			break
		}
	}

	priority := domain.TicketPriorityMedium
	for _, rule := range priorityRules {
		if rule.pattern.MatchString(text) {
			priority = rule.priority
			break
		}
	}

	team := teamByCategory[category]

	reasoning := fmt.Sprintf(
		"Analyzed ticket content and identified key indicators for %s category. "+
			"Priority set to %s based on urgency indicators. "+
			"Recommended routing to %s based on expertise match.",
		category, priority, team)

	return domain.ClassificationResult{
		Category:      category,
		Priority:      priority,
		Confidence:    confidence,
		Reasoning:     reasoning,
		SuggestedTeam: team,
	}, nil
}
