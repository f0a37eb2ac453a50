package reporters

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/samvad-hq/shapes-console/internal/logger"
	"google.golang.org/api/option"
)

type pubsubReporter struct {
	id     string
	client *pubsub.Client
	topic  *pubsub.Topic
	log    logger.Logger
}

func newPubSubReporter(ctx context.Context, cfg ReporterConfig, log logger.Logger) (Reporter, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("reporter %q missing pubsub configuration", cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &pubsubReporter{
		id:     cfg.ID,
		client: client,
		topic:  client.Topic(cfg.PubSub.Topic),
		log:    logger.Ensure(log),
	}, nil
}

func (p *pubsubReporter) ID() string   { return p.id }
func (p *pubsubReporter) Type() string { return TypePubSub }

// Report publishes the event and waits for the server ack.
func (p *pubsubReporter) Report(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	res := p.topic.Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: map[string]string{"control": evt.Control},
	})
	id, err := res.Get(ctx)
	if err != nil {
		p.log.ErrorObj("pubsub reporter publish failed", "reporter_pubsub_error", map[string]any{
			"reporter_id": p.id,
			"error":       err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	p.log.DebugObj("pubsub reporter delivered event", "reporter_pubsub_delivery", map[string]any{
		"reporter_id": p.id,
		"message_id":  id,
	})
	return nil
}

// Close flushes pending publishes and releases the client.
func (p *pubsubReporter) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
