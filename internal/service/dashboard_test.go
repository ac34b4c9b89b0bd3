package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/analytics"
	"github.com/BarkinBalci/launch-tracker/internal/blob/memory"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

var dashboardNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newTestDashboard(t *testing.T, ttl time.Duration) (*DashboardService, *store.Store, *time.Time) {
	t.Helper()
	s := store.NewStore(memory.NewBackend(), store.Config{Path: "launches.csv"}, zap.NewNop())
	svc := NewDashboardService(s, retailer.Default(), ttl, zap.NewNop())
	now := dashboardNow
	svc.now = func() time.Time { return now }
	return svc, s, &now
}

func launch(date, retailerName, pages string) domain.LaunchRecord {
	return domain.LaunchRecord{Date: date, Retailer: retailerName, Tranche: "T1", PageCount: pages, Approver: "Jane", SourceLink: "l"}
}

func TestDashboardService_EmptyLog(t *testing.T) {
	svc, _, _ := newTestDashboard(t, time.Minute)

	launches, err := svc.Launches(context.Background(), analytics.Query{Period: analytics.PeriodAllTime})
	require.NoError(t, err)
	assert.Empty(t, launches)

	summary, err := svc.Summary(context.Background(), analytics.Query{Period: analytics.PeriodAllTime})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalLaunches)
}

func TestDashboardService_LaunchesNewestFirst(t *testing.T) {
	svc, s, _ := newTestDashboard(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, launch("2024-05-13 09:00:00", "Roots", "3")))
	require.NoError(t, s.Append(ctx, launch("2024-05-14 09:00:00", "Madewell", "4")))

	launches, err := svc.Launches(ctx, analytics.Query{Period: analytics.PeriodThisWeek})
	require.NoError(t, err)
	require.Len(t, launches, 2)
	assert.Equal(t, "Madewell", launches[0].Retailer)
	assert.Equal(t, "Roots", launches[1].Retailer)
}

func TestDashboardService_CacheStaleness(t *testing.T) {
	svc, s, now := newTestDashboard(t, 30*time.Second)
	ctx := context.Background()
	q := analytics.Query{Period: analytics.PeriodAllTime}

	require.NoError(t, s.Append(ctx, launch("2024-05-13 09:00:00", "Roots", "3")))
	launches, err := svc.Launches(ctx, q)
	require.NoError(t, err)
	assert.Len(t, launches, 1)

	require.NoError(t, s.Append(ctx, launch("2024-05-14 09:00:00", "Roots", "3")))

	*now = now.Add(10 * time.Second)
	launches, err = svc.Launches(ctx, q)
	require.NoError(t, err)
	assert.Len(t, launches, 1, "served from cache within the staleness window")

	*now = now.Add(30 * time.Second)
	launches, err = svc.Launches(ctx, q)
	require.NoError(t, err)
	assert.Len(t, launches, 2)
}

func TestDashboardService_ReplaceLogInvalidatesCache(t *testing.T) {
	svc, s, _ := newTestDashboard(t, time.Hour)
	ctx := context.Background()
	q := analytics.Query{Period: analytics.PeriodAllTime}

	require.NoError(t, s.Append(ctx, launch("2024-05-13 09:00:00", "Roots", "3")))
	_, err := svc.Launches(ctx, q)
	require.NoError(t, err)

	snap, err := svc.RawLog(ctx)
	require.NoError(t, err)

	_, err = svc.ReplaceLog(ctx, store.HeaderRow(), snap.Version)
	require.NoError(t, err)

	launches, err := svc.Launches(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, launches)
}

func TestDashboardService_ReplaceLogConflict(t *testing.T) {
	svc, s, _ := newTestDashboard(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, launch("2024-05-13 09:00:00", "Roots", "3")))
	snap, err := svc.RawLog(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Append(ctx, launch("2024-05-14 09:00:00", "Roots", "3")))

	_, err = svc.ReplaceLog(ctx, store.HeaderRow(), snap.Version)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestDashboardService_Retailers(t *testing.T) {
	svc, _, _ := newTestDashboard(t, time.Minute)

	retailers := svc.Retailers()
	require.NotEmpty(t, retailers)
	assert.Equal(t, "Lenovo US", retailers[0].Name)

	for _, r := range retailers {
		if r.Name == "Madewell" {
			assert.Equal(t, "Weekly/Biweekly", r.Schedule)
		}
		if r.Name == "Roots" {
			assert.Equal(t, "Monthly", r.Schedule)
		}
	}
}
