package consumer

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/queue"
)

// ReceiverConfig configures the SQS receiver
type ReceiverConfig struct {
	MaxMessages     int32
	WaitTimeSeconds int32
	// ErrorBackoff is the pause after a failed receive call.
	ErrorBackoff time.Duration
}

// Receiver long-polls the confirmation queue
type Receiver struct {
	consumer queue.QueueConsumer
	config   ReceiverConfig
	log      *zap.Logger
}

// NewReceiver creates a new SQS receiver
func NewReceiver(consumer queue.QueueConsumer, config ReceiverConfig, log *zap.Logger) *Receiver {
	return &Receiver{
		consumer: consumer,
		config:   config,
		log:      log,
	}
}

func (r *Receiver) receiveInput() *awssqs.ReceiveMessageInput {
	return &awssqs.ReceiveMessageInput{
		QueueUrl:              aws.String(r.consumer.QueueURL()),
		MaxNumberOfMessages:   r.config.MaxMessages,
		WaitTimeSeconds:       r.config.WaitTimeSeconds,
		MessageAttributeNames: []string{"All"},
	}
}

// Start polls until ctx is done and closes out on return.
func (r *Receiver) Start(ctx context.Context, out chan<- types.Message) {
	defer close(out)

	for ctx.Err() == nil {
		messages, ok := r.poll(ctx)
		if !ok {
			continue
		}
		if !r.forward(ctx, messages, out) {
			break
		}
	}

	r.log.Info("Receiver shutting down")
}

// poll performs one receive call. A failed call is logged and followed by
// the configured backoff.
func (r *Receiver) poll(ctx context.Context) ([]types.Message, bool) {
	result, err := r.consumer.ReceiveMessages(ctx, r.receiveInput())
	if err != nil {
		if ctx.Err() != nil {
			return nil, false
		}
		r.log.Error("Failed to receive confirmations", zap.Error(err))
		select {
		case <-ctx.Done():
		case <-time.After(r.config.ErrorBackoff):
		}
		return nil, false
	}

	if len(result.Messages) > 0 {
		r.log.Debug("Received confirmations", zap.Int("message_count", len(result.Messages)))
	}
	return result.Messages, true
}

// forward hands messages to the next stage, reporting false if ctx ended first.
func (r *Receiver) forward(ctx context.Context, messages []types.Message, out chan<- types.Message) bool {
	for _, msg := range messages {
		select {
		case <-ctx.Done():
			return false
		case out <- msg:
		}
	}
	return true
}
