package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// SMS is one outbound text message.
type SMS struct {
	To   string
	Body string
	// Reference ties the message to its source record, e.g. a reminder id.
	Reference string
}

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, msg SMS) error
}

var ErrEmptyRecipient = errors.New("sms recipient is empty")

// ConsoleSMSSender only logs the outgoing message. Used in development.
type ConsoleSMSSender struct {
	Logger *zap.Logger
}

func (s *ConsoleSMSSender) Send(_ context.Context, msg SMS) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.L()
	}
	logger.Info("Sending SMS",
		zap.String("to", msg.To),
		zap.String("reference", msg.Reference),
		zap.String("body", msg.Body),
	)
	return nil
}

type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSMSSender sends transactional SMS through Amazon SNS.
type SNSSMSSender struct {
	client   snsPublisher
	senderID string
	logger   *zap.Logger
}

// NewSNSSMSSender builds a sender from the default AWS credential chain.
func NewSNSSMSSender(ctx context.Context, region, senderID string, logger *zap.Logger) (*SNSSMSSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SNSSMSSender{
		client:   sns.NewFromConfig(cfg),
		senderID: senderID,
		logger:   logger,
	}, nil
}

func (s *SNSSMSSender) Send(ctx context.Context, msg SMS) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}
	out, err := s.client.Publish(ctx, s.publishInput(msg))
	if err != nil {
		return fmt.Errorf("sns publish to %s failed: %w", msg.To, err)
	}
	if s.logger != nil {
		s.logger.Debug("SMS accepted by SNS",
			zap.String("reference", msg.Reference),
			zap.String("messageId", aws.ToString(out.MessageId)),
		)
	}
	return nil
}

func (s *SNSSMSSender) publishInput(msg SMS) *sns.PublishInput {
	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s.senderID),
		}
	}
	return &sns.PublishInput{
		PhoneNumber:       aws.String(msg.To),
		Message:           aws.String(msg.Body),
		MessageAttributes: attrs,
	}
}

// timeoutSender bounds every call of the wrapped sender.
type timeoutSender struct {
	next    SMSSender
	timeout time.Duration
}

// WithTimeout wraps next so a hanging provider cannot stall the caller past d.
func WithTimeout(next SMSSender, d time.Duration) SMSSender {
	if d <= 0 {
		return next
	}
	return &timeoutSender{next: next, timeout: d}
}

func (t *timeoutSender) Send(ctx context.Context, msg SMS) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Send(ctx, msg)
}
