package domain

// SLAMetrics is a computed, non-persisted aggregate over a ticket
// collection. Category and priority maps always contain every key of
// the fixed enumerations, zero-filled when absent.
type SLAMetrics struct {
	TotalTickets          int
	BreachedTickets       int
	AverageResolutionTime float64 // hours, over resolved tickets only
	RoutingAccuracy       float64
	TicketsByCategory     map[TicketCategory]int
	TicketsByPriority     map[TicketPriority]int
}
