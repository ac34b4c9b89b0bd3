package consumer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/service"
)

// RecorderConfig configures the recorder stage
type RecorderConfig struct {
	Concurrency int
}

// Recorder appends confirmed launches to the log, one envelope per worker
// at a time. Concurrent appends are safe because the store serializes
// writers through the remote version check.
type Recorder struct {
	recorder service.LaunchRecorder
	config   RecorderConfig
	log      *zap.Logger
}

// NewRecorder creates a new recorder stage
func NewRecorder(recorder service.LaunchRecorder, config RecorderConfig, log *zap.Logger) *Recorder {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Recorder{
		recorder: recorder,
		config:   config,
		log:      log,
	}
}

// Start consumes envelopes until the input closes or ctx is done
func (r *Recorder) Start(ctx context.Context, in <-chan *Envelope) {
	var wg sync.WaitGroup

	wg.Add(r.config.Concurrency)
	for i := 0; i < r.config.Concurrency; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case envelope, ok := <-in:
					if !ok {
						return
					}
					r.process(ctx, envelope)
				}
			}
		}()
	}

	wg.Wait()
	r.log.Info("Recorder shutting down")
}

// process records one launch. Once the outcome has been reported to the
// approver the message is acked whatever the outcome, so a failed launch is
// not appended twice by a redelivery. Only shutdown leaves it for redelivery.
func (r *Recorder) process(ctx context.Context, envelope *Envelope) {
	c := envelope.Confirmation

	err := r.recorder.Record(ctx, *c)
	if err != nil && ctx.Err() != nil {
		r.log.Warn("Launch interrupted by shutdown",
			zap.String("job_id", c.JobID),
			zap.Error(err))
		if err := envelope.Nack(ctx); err != nil {
			r.log.Error("Failed to nack envelope", zap.String("job_id", c.JobID), zap.Error(err))
		}
		return
	}

	// Acks use a context that survives shutdown so a handled launch is not redelivered.
	if err := envelope.Ack(context.WithoutCancel(ctx)); err != nil {
		r.log.Error("Failed to ack envelope", zap.String("job_id", c.JobID), zap.Error(err))
	}
}
