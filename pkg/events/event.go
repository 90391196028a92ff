package events

import "time"

// Outcome classifies how an invocation ended.
const (
	OutcomeOK              = "ok"
	OutcomePaymentRequired = "payment_required"
	OutcomeError           = "error"
)

// Event represents one tool invocation published downstream.
type Event struct {
	ToolName       string    `json:"tool_name"`
	CapabilityID   string    `json:"capability_id"`
	Outcome        string    `json:"outcome"`
	Price          string    `json:"price,omitempty"`
	DurationMillis int64     `json:"duration_ms"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewEvent constructs an Event for a completed invocation.
func NewEvent(toolName, capabilityID, outcome, price string, duration time.Duration) Event {
	return Event{
		ToolName:       toolName,
		CapabilityID:   capabilityID,
		Outcome:        outcome,
		Price:          price,
		DurationMillis: duration.Milliseconds(),
		OccurredAt:     time.Now().UTC(),
	}
}
