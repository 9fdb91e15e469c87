package classifier

import (
	"context"

	"github.com/spec-kit/triage-service/internal/domain"
)

// Classifier produces a classification for a ticket's free text. The
// keyword implementation below is the default; a real inference
// backend can be substituted without touching callers.
type Classifier interface {
	Classify(ctx context.Context, title, description string) (domain.ClassificationResult, error)
}
