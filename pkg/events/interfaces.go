package events

import "context"

// Publisher sends invocation events to a downstream sink (SQS, HTTP, etc).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
