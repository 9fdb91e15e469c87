package domain

// ClassificationResult is the output of a single classification pass
// over a ticket's title and description.
type ClassificationResult struct {
	Category      TicketCategory
	Priority      TicketPriority
	Confidence    float64
	Reasoning     string
	SuggestedTeam string
}
