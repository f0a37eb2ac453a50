package reporters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/samvad-hq/shapes-console/internal/logger"
)

// sqsClient defines the minimal subset of the SQS client used by sqsReporter.
type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type sqsReporter struct {
	id       string
	queueURL string
	client   sqsClient
	log      logger.Logger
}

func newSQSReporter(ctx context.Context, cfg ReporterConfig, log logger.Logger) (Reporter, error) {
	if cfg.SQS == nil {
		return nil, fmt.Errorf("reporter %q missing sqs configuration", cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	awsCfg, err := loadAWSConfig(ctx, cfg.SQS.AWSConfig)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &sqsReporter{
		id:       cfg.ID,
		queueURL: cfg.SQS.QueueURL,
		client:   sqs.NewFromConfig(awsCfg),
		log:      logger.Ensure(log),
	}, nil
}

func (s *sqsReporter) ID() string   { return s.id }
func (s *sqsReporter) Type() string { return TypeSQS }

// Report sends the event to the configured queue.
func (s *sqsReporter) Report(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"control": {
				DataType:    aws.String("String"),
				StringValue: aws.String(evt.Control),
			},
		},
	}

	out, err := s.client.SendMessage(ctx, input)
	if err != nil {
		s.log.ErrorObj("sqs reporter send failed", "reporter_sqs_error", map[string]any{
			"reporter_id": s.id,
			"error":       err.Error(),
		})
		return fmt.Errorf("send message to sqs: %w", err)
	}
	s.log.DebugObj("sqs reporter delivered event", "reporter_sqs_delivery", map[string]any{
		"reporter_id": s.id,
		"message_id":  aws.ToString(out.MessageId),
	})
	return nil
}
