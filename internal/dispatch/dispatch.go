// Package dispatch hands confirmed launches off the chat event path.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/queue"
	"github.com/BarkinBalci/launch-tracker/internal/service"
)

// Dispatcher starts the durable append of a confirmed launch without
// blocking the caller on it.
type Dispatcher interface {
	Dispatch(ctx context.Context, c domain.Confirmation) (string, error)
}

func withJobID(c domain.Confirmation) domain.Confirmation {
	if c.JobID == "" {
		c.JobID = uuid.NewString()
	}
	return c
}

// LocalDispatcher records launches on a background goroutine of the same process.
type LocalDispatcher struct {
	recorder service.LaunchRecorder
	log      *zap.Logger
	wg       sync.WaitGroup
}

// NewLocalDispatcher creates a new in-process dispatcher
func NewLocalDispatcher(recorder service.LaunchRecorder, log *zap.Logger) *LocalDispatcher {
	return &LocalDispatcher{
		recorder: recorder,
		log:      log,
	}
}

// Dispatch returns the job id immediately; the append runs detached from ctx.
func (d *LocalDispatcher) Dispatch(ctx context.Context, c domain.Confirmation) (string, error) {
	c = withJobID(c)
	jobCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.recorder.Record(jobCtx, c); err != nil {
			d.log.Debug("Background launch job finished with error",
				zap.String("job_id", c.JobID),
				zap.Error(err))
		}
	}()

	return c.JobID, nil
}

// Wait blocks until every dispatched job has finished
func (d *LocalDispatcher) Wait() {
	d.wg.Wait()
}

// QueueDispatcher publishes launches for a separate worker process.
type QueueDispatcher struct {
	publisher queue.ConfirmationPublisher
	log       *zap.Logger
}

// NewQueueDispatcher creates a new queue-backed dispatcher
func NewQueueDispatcher(publisher queue.ConfirmationPublisher, log *zap.Logger) *QueueDispatcher {
	return &QueueDispatcher{
		publisher: publisher,
		log:       log,
	}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, c domain.Confirmation) (string, error) {
	c = withJobID(c)
	if err := d.publisher.PublishConfirmation(ctx, c); err != nil {
		return "", fmt.Errorf("failed to enqueue launch: %w", err)
	}
	d.log.Debug("Launch enqueued", zap.String("job_id", c.JobID))
	return c.JobID, nil
}
