package events

import "context"

// logSink writes invocation events to the application logger. It is the
// default sink when nothing else is configured.
type logSink struct {
	id  string
	typ string
	log Logger
}

func newLogSink(_ context.Context, cfg SinkConfig, log Logger) (Publisher, error) {
	return &logSink{
		id:  cfg.ID,
		typ: TypeLog,
		log: ensureLogger(log),
	}, nil
}

func (l *logSink) ID() string   { return l.id }
func (l *logSink) Type() string { return l.typ }

func (l *logSink) Publish(_ context.Context, evt Event) error {
	l.log.InfoObj("capability invoked", "invocation", map[string]any{
		"tool_name":     evt.ToolName,
		"capability_id": evt.CapabilityID,
		"outcome":       evt.Outcome,
		"price":         evt.Price,
		"duration_ms":   evt.DurationMillis,
	})
	return nil
}
