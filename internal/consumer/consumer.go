package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/config"
	"github.com/BarkinBalci/launch-tracker/internal/queue"
	"github.com/BarkinBalci/launch-tracker/internal/service"
)

// Consumer orchestrates a pipeline of stages to process queued confirmations
type Consumer struct {
	receiver *Receiver
	parser   *ParserStage
	recorder *Recorder
}

// NewConsumer creates a new consumer with a pipeline architecture
func NewConsumer(cfg config.Worker, queueConsumer queue.QueueConsumer, launches service.LaunchRecorder, log *zap.Logger) *Consumer {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     cfg.MaxMessages,
		WaitTimeSeconds: cfg.WaitTimeSeconds,
		ErrorBackoff:    time.Second,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONConfirmationParser(), log)

	recorder := NewRecorder(launches, RecorderConfig{
		Concurrency: cfg.Concurrency,
	}, log)

	return &Consumer{
		receiver: receiver,
		parser:   parser,
		recorder: recorder,
	}
}

// Start runs the pipeline until ctx is done
func (c *Consumer) Start(ctx context.Context) error {
	messageChan := make(chan types.Message, 100)
	envelopeChan := make(chan *Envelope, 100)

	var wg sync.WaitGroup

	wg.Add(3)

	// Stage 1: Receive messages from SQS
	go func() {
		defer wg.Done()
		c.receiver.Start(ctx, messageChan)
	}()

	// Stage 2: Parse messages into envelopes
	go func() {
		defer wg.Done()
		c.parser.Start(ctx, messageChan, envelopeChan)
	}()

	// Stage 3: Append launches to the log
	go func() {
		defer wg.Done()
		c.recorder.Start(ctx, envelopeChan)
	}()

	wg.Wait()
	return nil
}
