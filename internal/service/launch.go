package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/repository"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

// Launch results reported to the ResultRecorder.
const (
	ResultLogged            = "logged"
	ResultConflictExhausted = "conflict_exhausted"
	ResultHardError         = "hard_error"
)

// LaunchService appends confirmed launches and tells the approver how it went.
type LaunchService struct {
	appender Appender
	notifier Notifier
	results  ResultRecorder
	mirror   Mirror
	log      *zap.Logger
}

// NewLaunchService creates a new launch service. results may be nil.
func NewLaunchService(appender Appender, notifier Notifier, results ResultRecorder, log *zap.Logger) *LaunchService {
	return &LaunchService{
		appender: appender,
		notifier: notifier,
		results:  results,
		log:      log,
	}
}

// WithMirror copies every logged launch to m on a best-effort basis.
func (s *LaunchService) WithMirror(m Mirror) *LaunchService {
	s.mirror = m
	return s
}

// Record appends the confirmed launch. Failures are always reported through
// the notifier and returned; they are never retried here.
func (s *LaunchService) Record(ctx context.Context, c domain.Confirmation) error {
	log := s.log.With(
		zap.String("job_id", c.JobID),
		zap.String("retailer", c.Record.Retailer),
		zap.String("approver", c.Record.Approver))

	appendErr := s.appender.Append(ctx, c.Record)
	if appendErr == nil {
		s.record(ResultLogged)
		log.Info("Launch logged")
		s.mirrorLaunch(ctx, c, log)
		if err := s.notifier.Logged(ctx, c); err != nil {
			log.Warn("Failed to notify approver of logged launch", zap.Error(err))
		}
		return nil
	}

	if store.IsConflictExhausted(appendErr) {
		s.record(ResultConflictExhausted)
	} else {
		s.record(ResultHardError)
	}
	log.Error("Failed to log launch", zap.Error(appendErr))

	if err := s.notifier.Failed(ctx, c, appendErr); err != nil {
		log.Error("Failed to notify approver of failed launch", zap.Error(err))
	}

	return fmt.Errorf("failed to log launch: %w", appendErr)
}

func (s *LaunchService) mirrorLaunch(ctx context.Context, c domain.Confirmation, log *zap.Logger) {
	if s.mirror == nil {
		return
	}
	launch, err := repository.LaunchFromRecord(c.JobID, c.Record, time.Local)
	if err != nil {
		log.Warn("Skipping mirror of launch", zap.Error(err))
		return
	}
	if _, err := s.mirror.InsertLaunches(ctx, []repository.Launch{launch}); err != nil {
		log.Warn("Failed to mirror launch", zap.Error(err))
	}
}

func (s *LaunchService) record(result string) {
	if s.results != nil {
		s.results.RecordLaunch(result)
	}
}
