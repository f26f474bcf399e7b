package gateway

import (
	"context"
	"fmt"

	appconfig "croppulse/config"
	"croppulse/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// SNSSMSGateway sends SMS through AWS SNS.
type SNSSMSGateway struct {
	client   *sns.Client
	senderID string
}

// NewSNSSMSGateway builds an SMS gateway from the default AWS credential
// chain and the configured region.
func NewSNSSMSGateway(ctx context.Context) (*SNSSMSGateway, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(appconfig.AppConfig.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SNSSMSGateway{
		client:   sns.NewFromConfig(cfg),
		senderID: appconfig.AppConfig.SMSSenderID,
	}, nil
}

func (g *SNSSMSGateway) Send(ctx context.Context, phone, message string) error {
	ctx, cancel := withCallTimeout(ctx)
	defer cancel()

	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
	}
	if g.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(g.senderID),
		}
	}
	_, err := g.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(phone),
		Message:           aws.String(message),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sns publish to %s: %w", phone, err)
	}
	return nil
}

// SendBulk publishes to each number in turn. SNS has no SMS batch API, so a
// failure on one number does not stop the rest.
func (g *SNSSMSGateway) SendBulk(ctx context.Context, phones []string, message string) (*BulkSMSResult, error) {
	logger := utils.GetLogger()
	result := &BulkSMSResult{}
	for _, phone := range phones {
		if err := g.Send(ctx, phone, message); err != nil {
			logger.Warn("SMS delivery failed", zap.String("phone", phone), zap.Error(err))
			result.Failed = append(result.Failed, phone)
			continue
		}
		result.Successful = append(result.Successful, phone)
	}
	return result, nil
}
