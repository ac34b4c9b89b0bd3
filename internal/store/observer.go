package store

import (
	"time"

	"go.uber.org/zap"
)

// Outcome of a single append attempt.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeConflict  Outcome = "conflict"
	OutcomeHardError Outcome = "hard_error"
)

// Attempt describes one fetch/write round of an append.
type Attempt struct {
	Path        string
	Number      int
	MaxAttempts int
	Outcome     Outcome
	// Created is set when the attempt tried to create the resource.
	Created  bool
	Duration time.Duration
	Err      error
}

// Observer receives one signal per append attempt. It must not block.
type Observer interface {
	ObserveAttempt(Attempt)
}

// Observers fans a signal out to several observers.
type Observers []Observer

func (o Observers) ObserveAttempt(a Attempt) {
	for _, obs := range o {
		obs.ObserveAttempt(a)
	}
}

// LogObserver writes attempt signals to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver creates an observer that logs every attempt
func NewLogObserver(log *zap.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) ObserveAttempt(a Attempt) {
	fields := []zap.Field{
		zap.String("path", a.Path),
		zap.Int("attempt", a.Number),
		zap.Int("max_attempts", a.MaxAttempts),
		zap.Bool("create", a.Created),
		zap.Duration("duration", a.Duration),
	}

	switch a.Outcome {
	case OutcomeSuccess:
		o.log.Info("Appended launch record", fields...)
	case OutcomeConflict:
		o.log.Warn("Concurrency conflict appending launch record", append(fields, zap.Error(a.Err))...)
	default:
		o.log.Error("Failed to append launch record", append(fields, zap.Error(a.Err))...)
	}
}
