package reporters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/samvad-hq/shapes-console/internal/logger"
)

// snsClient defines the minimal subset of the SNS client used by snsReporter.
type snsClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type snsReporter struct {
	id       string
	topicARN string
	client   snsClient
	log      logger.Logger
}

func newSNSReporter(ctx context.Context, cfg ReporterConfig, log logger.Logger) (Reporter, error) {
	if cfg.SNS == nil {
		return nil, fmt.Errorf("reporter %q missing sns configuration", cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.SNS.AWSConfig)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &snsReporter{
		id:       cfg.ID,
		topicARN: cfg.SNS.TopicARN,
		client:   sns.NewFromConfig(awsCfg),
		log:      logger.Ensure(log),
	}, nil
}

func (s *snsReporter) ID() string   { return s.id }
func (s *snsReporter) Type() string { return TypeSNS }

// Report publishes the event to the configured topic.
func (s *snsReporter) Report(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"control": {
				DataType:    aws.String("String"),
				StringValue: aws.String(evt.Control),
			},
		},
	}

	out, err := s.client.Publish(ctx, input)
	if err != nil {
		s.log.ErrorObj("sns reporter publish failed", "reporter_sns_error", map[string]any{
			"reporter_id": s.id,
			"error":       err.Error(),
		})
		return fmt.Errorf("publish to sns: %w", err)
	}
	s.log.DebugObj("sns reporter delivered event", "reporter_sns_delivery", map[string]any{
		"reporter_id": s.id,
		"message_id":  aws.ToString(out.MessageId),
	})
	return nil
}
