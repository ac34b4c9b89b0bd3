package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

// Launch is one logged launch as held by the reporting mirror
type Launch struct {
	JobID       string
	ConfirmedAt time.Time
	Retailer    string
	Tranche     string
	Pages       uint32
	Approver    string
	SourceLink  string
}

// LaunchFromRecord converts a log row. jobID is empty for rows that
// predate the mirror or were added by hand.
func LaunchFromRecord(jobID string, rec domain.LaunchRecord, loc *time.Location) (Launch, error) {
	at, err := rec.ConfirmedAt(loc)
	if err != nil {
		return Launch{}, fmt.Errorf("invalid launch date %q: %w", rec.Date, err)
	}
	return Launch{
		JobID:       jobID,
		ConfirmedAt: at,
		Retailer:    rec.Retailer,
		Tranche:     rec.Tranche,
		Pages:       uint32(rec.Pages()),
		Approver:    rec.Approver,
		SourceLink:  rec.SourceLink,
	}, nil
}

// RetailerPages represents aggregated volume for one retailer
type RetailerPages struct {
	Retailer string
	Launches uint64
	Pages    uint64
}

// LaunchRepository defines the interface for the launch reporting mirror
type LaunchRepository interface {
	// InsertLaunches inserts a batch of launches into the storage
	InsertLaunches(ctx context.Context, launches []Launch) (int, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// PagesByRetailer aggregates launches confirmed in [from, to)
	PagesByRetailer(ctx context.Context, from, to time.Time) ([]RetailerPages, error)

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}
