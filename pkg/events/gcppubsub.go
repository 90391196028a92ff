package events

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// pubsubSink implements the Publisher interface for GCP Pub/Sub.
type pubsubSink struct {
	id     string
	typ    string
	client *pubsub.Client
	topic  *pubsub.Topic
	log    Logger
}

// newPubSubSink creates a Pub/Sub sink. The standard PUBSUB_EMULATOR_HOST
// environment variable is honored by the client; an explicit endpoint in the
// sink config takes precedence.
func newPubSubSink(ctx context.Context, cfg SinkConfig, log Logger) (Publisher, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("sink %q missing pubsub configuration", cfg.ID)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.Endpoint != "" {
		opts = append(opts,
			option.WithEndpoint(cfg.PubSub.Endpoint),
			option.WithoutAuthentication(),
		)
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &pubsubSink{
		id:     cfg.ID,
		typ:    TypePubSub,
		client: client,
		topic:  client.Topic(cfg.PubSub.Topic),
		log:    ensureLogger(log),
	}, nil
}

func (p *pubsubSink) ID() string   { return p.id }
func (p *pubsubSink) Type() string { return p.typ }

// Publish sends the event to the configured topic and waits for the server
// acknowledgement.
func (p *pubsubSink) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"capability_id": evt.CapabilityID,
		},
	})

	if _, err := result.Get(ctx); err != nil {
		p.log.ErrorObj("pubsub sink publish failed", "sink_pubsub_error", map[string]any{
			"sink_id": p.id,
			"error":   err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	p.log.DebugObj("pubsub sink delivered event", "sink_pubsub_delivery", map[string]any{
		"sink_id": p.id,
	})
	return nil
}

// Close stops the topic publisher and closes the client.
func (p *pubsubSink) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	if p.topic != nil {
		p.topic.Stop()
	}
	return p.client.Close()
}
