package clickhouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BarkinBalci/launch-tracker/internal/config"
	"github.com/BarkinBalci/launch-tracker/internal/repository"
)

func TestOptions(t *testing.T) {
	opts := options(config.ClickHouse{
		Host:            "clickhouse",
		Port:            "9440",
		Database:        "launches",
		User:            "bot",
		Password:        "secret",
		UseTLS:          true,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 60,
	})

	assert.Equal(t, []string{"clickhouse:9440"}, opts.Addr)
	assert.Equal(t, "launches", opts.Auth.Database)
	assert.Equal(t, "bot", opts.Auth.Username)
	assert.Equal(t, "secret", opts.Auth.Password)
	assert.NotNil(t, opts.TLS)
	assert.Equal(t, 5, opts.MaxOpenConns)
	assert.Equal(t, 2, opts.MaxIdleConns)
	assert.Equal(t, time.Minute, opts.ConnMaxLifetime)
}

func TestOptions_NoTLS(t *testing.T) {
	opts := options(config.ClickHouse{Host: "localhost", Port: "9000"})

	assert.Equal(t, []string{"localhost:9000"}, opts.Addr)
	assert.Nil(t, opts.TLS)
}

func TestRow_MatchesInsertColumns(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	l := repository.Launch{
		JobID:       "job-1",
		ConfirmedAt: at,
		Retailer:    "Roots",
		Tranche:     "T1",
		Pages:       12,
		Approver:    "Jane Doe",
		SourceLink:  "https://x/y",
	}

	got := row(l, 42)

	assert.Equal(t, []any{"job-1", at, "Roots", "T1", uint32(12), "Jane Doe", "https://x/y", uint64(42)}, got)
}
