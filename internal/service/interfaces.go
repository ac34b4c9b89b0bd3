package service

import (
	"context"

	"github.com/BarkinBalci/launch-tracker/internal/analytics"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/dto"
	"github.com/BarkinBalci/launch-tracker/internal/repository"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

// Appender appends one record to the launch log
type Appender interface {
	Append(ctx context.Context, rec domain.LaunchRecord) error
}

// LogReader reads and replaces the whole launch log
type LogReader interface {
	Snapshot(ctx context.Context) (*store.Snapshot, error)
	Replace(ctx context.Context, content []byte, expectedVersion string) (string, error)
}

// Notifier reports the outcome of a confirmed launch back to the approver
type Notifier interface {
	Logged(ctx context.Context, c domain.Confirmation) error
	Failed(ctx context.Context, c domain.Confirmation, cause error) error
}

// ResultRecorder counts final launch results
type ResultRecorder interface {
	RecordLaunch(result string)
}

// Mirror receives logged launches for reporting. It is never the system of record.
type Mirror interface {
	InsertLaunches(ctx context.Context, launches []repository.Launch) (int, error)
}

// LaunchRecorder defines the interface for recording confirmed launches
type LaunchRecorder interface {
	Record(ctx context.Context, c domain.Confirmation) error
}

// DashboardServicer defines the interface for dashboard read operations
type DashboardServicer interface {
	Launches(ctx context.Context, q analytics.Query) ([]domain.LaunchRecord, error)
	Summary(ctx context.Context, q analytics.Query) (*analytics.Summary, error)
	Retailers() []dto.RetailerInfo
	RawLog(ctx context.Context) (*store.Snapshot, error)
	ReplaceLog(ctx context.Context, content []byte, expectedVersion string) (string, error)
}
