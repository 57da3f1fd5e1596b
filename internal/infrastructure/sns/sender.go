package sns

import (
	"context"
	"errors"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/hs-portal-api/internal/config"
)

// Pusher fans a notification out to the configured SNS topic. Delivery is
// best-effort everywhere it is used; subscribers (mobile push, webhooks) are
// configured outside this service.
type Pusher interface {
	Push(ctx context.Context, subject, message string) error
}

type sender struct {
	client   *sns.Client
	topicARN string
}

func NewSender(cfg *config.Config) (Pusher, error) {
	if cfg.SNSTopicARN == "" {
		return nil, errors.New("SNS_TOPIC_ARN not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

func (s *sender) Push(ctx context.Context, subject, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &s.topicARN,
		Subject:  &subject,
		Message:  &message,
	})
	return err
}
