package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

// ConfirmationPublisher defines the interface for handing confirmed launches to the worker queue
type ConfirmationPublisher interface {
	PublishConfirmation(ctx context.Context, c domain.Confirmation) error
}

// QueueConsumer defines the interface for consuming messages from a queue
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
