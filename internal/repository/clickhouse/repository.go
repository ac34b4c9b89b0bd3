package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/config"
	"github.com/BarkinBalci/launch-tracker/internal/repository"
)

const createLaunchesTable = `
	CREATE TABLE IF NOT EXISTS launches (
		job_id String,
		confirmed_at DateTime,
		retailer LowCardinality(String),
		tranche LowCardinality(String),
		pages UInt32,
		approver String,
		source_link String,
		mirrored_at DateTime64(3) DEFAULT now64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	ORDER BY (confirmed_at, retailer, tranche, approver)
	PARTITION BY toYYYYMM(confirmed_at)
	`

const pagesByRetailerQuery = `
	SELECT
		retailer,
		count() AS launches,
		sum(pages) AS pages
	FROM launches FINAL
	WHERE confirmed_at >= ? AND confirmed_at < ?
	GROUP BY retailer
	ORDER BY pages DESC, retailer ASC
	`

// Repository implements LaunchRepository for ClickHouse
type Repository struct {
	conn    driver.Conn
	closeFn func() error
	now     func() time.Time
	log     *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		conn:    client.Conn(),
		closeFn: client.Close,
		now:     time.Now,
		log:     log,
	}
}

// InitSchema creates the launches table. Re-mirrored rows collapse on the
// sort key, keeping the highest version.
func (r *Repository) InitSchema(ctx context.Context) error {
	if err := r.conn.Exec(ctx, createLaunchesTable); err != nil {
		return fmt.Errorf("failed to create launches table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized")
	return nil
}

// row returns the column values for one launch in table order.
func row(l repository.Launch, version uint64) []any {
	return []any{
		l.JobID,
		l.ConfirmedAt,
		l.Retailer,
		l.Tranche,
		l.Pages,
		l.Approver,
		l.SourceLink,
		version,
	}
}

// InsertLaunches inserts a batch of launches into ClickHouse
func (r *Repository) InsertLaunches(ctx context.Context, launches []repository.Launch) (int, error) {
	if len(launches) == 0 {
		return 0, nil
	}

	batch, err := r.conn.PrepareBatch(ctx,
		"INSERT INTO launches (job_id, confirmed_at, retailer, tranche, pages, approver, source_link, version)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	version := uint64(r.now().UnixNano())
	for _, l := range launches {
		if err := batch.Append(row(l, version)...); err != nil {
			_ = batch.Abort()
			return 0, fmt.Errorf("failed to append launch to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	r.log.Debug("Launches mirrored", zap.Int("count", len(launches)))
	return len(launches), nil
}

// PagesByRetailer aggregates mirrored launches per retailer
func (r *Repository) PagesByRetailer(ctx context.Context, from, to time.Time) ([]repository.RetailerPages, error) {
	rows, err := r.conn.Query(ctx, pagesByRetailerQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages by retailer: %w", err)
	}
	defer func(rows driver.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close pages by retailer rows", zap.Error(err))
		}
	}(rows)

	result := []repository.RetailerPages{}
	for rows.Next() {
		var p repository.RetailerPages
		if err := rows.Scan(&p.Retailer, &p.Launches, &p.Pages); err != nil {
			return nil, fmt.Errorf("failed to scan pages by retailer row: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pages by retailer rows: %w", err)
	}

	return result, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.closeFn()
}

// Open connects to ClickHouse and ensures the schema exists.
func Open(ctx context.Context, cfg config.ClickHouse, log *zap.Logger) (*Repository, error) {
	client, err := NewClient(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(client, log)
	if err := repo.InitSchema(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return repo, nil
}
