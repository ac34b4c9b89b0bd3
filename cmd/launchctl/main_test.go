package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarkinBalci/launch-tracker/internal/analytics"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("RETAILERS_FILE", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "parse", "Madewell", "tranche-2", "live", "on", "prod,", "120", "pages")
	require.NoError(t, err)

	assert.Contains(t, out, "Announcement: true")
	assert.Contains(t, out, "Retailer:     Madewell")
	assert.Contains(t, out, "Tranche:      T2")
	assert.Contains(t, out, "Page count:   120")
}

func TestRetailersCommand(t *testing.T) {
	out, err := execute(t, "retailers")
	require.NoError(t, err)

	assert.Contains(t, out, "Lenovo US")
	assert.Contains(t, out, "Weekly/Biweekly")
}

func TestAppendCommand(t *testing.T) {
	out, err := execute(t, "append", "--retailer", "Roots", "--tranche", "T1", "--pages", "12", "--approver", "Jane Doe")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged Roots T1 (12 pages) by Jane Doe")
}

func TestAppendCommand_UnknownRetailer(t *testing.T) {
	_, err := execute(t, "append", "--retailer", "Nowhere", "--approver", "Jane Doe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown retailer")
}

func TestShowCommand_EmptyLog(t *testing.T) {
	out, err := execute(t, "show", "--period", "all_time")
	require.NoError(t, err)

	assert.Contains(t, out, "Period:           all_time")
	assert.Contains(t, out, "Total launches:   0")
}

func TestShowCommand_InvalidPeriod(t *testing.T) {
	_, err := execute(t, "show", "--period", "fortnight")
	assert.ErrorContains(t, err, "invalid period")
}

func TestMirrorCommand_RequiresClickHouse(t *testing.T) {
	t.Setenv("CLICKHOUSE_HOST", "")
	_, err := execute(t, "mirror")
	assert.ErrorContains(t, err, "CLICKHOUSE_HOST is required")
}

func TestToLaunches_SkipsUnreadableDates(t *testing.T) {
	records := []domain.LaunchRecord{
		{Date: "2024-03-05 14:30:00", Retailer: "Roots", PageCount: "12"},
		{Date: "yesterday", Retailer: "Madewell", PageCount: "5"},
	}

	launches, skipped := toLaunches(records, time.UTC)

	require.Len(t, launches, 1)
	assert.Equal(t, "Roots", launches[0].Retailer)
	assert.Equal(t, uint32(12), launches[0].Pages)
	assert.Equal(t, 1, skipped)
}

func TestReportWindow(t *testing.T) {
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	from, to := reportWindow(analytics.PeriodThisWeek, now)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), to)

	from, to = reportWindow(analytics.PeriodAllTime, now)
	assert.Equal(t, time.Unix(0, 0), from)
	assert.True(t, to.After(now))
}
