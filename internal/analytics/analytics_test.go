package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
)

// Wednesday
var testNow = time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

func rec(date, retailerName, pages string) domain.LaunchRecord {
	return domain.LaunchRecord{Date: date, Retailer: retailerName, Tranche: "T1", PageCount: pages, Approver: "Jane", SourceLink: "l"}
}

func testTable() *retailer.Table {
	return &retailer.Table{Entries: []retailer.Entry{
		{Name: "Roots", Keywords: []string{"roots"}},
		{Name: "Madewell", Keywords: []string{"madewell"}, Schedule: "Weekly/Biweekly"},
		{Name: "LOFT", Keywords: []string{"loft"}},
	}}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodThisWeek, p)

	p, err = ParsePeriod("all_time")
	require.NoError(t, err)
	assert.Equal(t, PeriodAllTime, p)

	_, err = ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestWindow(t *testing.T) {
	monday := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

	start, end, bounded := Window(PeriodThisWeek, testNow)
	assert.True(t, bounded)
	assert.Equal(t, monday, start)
	assert.Equal(t, monday.AddDate(0, 0, 7), end)

	start, end, _ = Window(PeriodLastWeek, testNow)
	assert.Equal(t, monday.AddDate(0, 0, -7), start)
	assert.Equal(t, monday, end)

	start, end, _ = Window(PeriodThisMonth, testNow)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, bounded = Window(PeriodAllTime, testNow)
	assert.False(t, bounded)
}

func TestWindow_Sunday(t *testing.T) {
	sunday := time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC)
	start, _, _ := Window(PeriodThisWeek, sunday)
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), start)
}

func TestFilter(t *testing.T) {
	records := []domain.LaunchRecord{
		rec("2024-05-14 09:00:00", "Roots", "10"),
		rec("2024-05-08 09:00:00", "Madewell", "5"),
		rec("2024-05-02 09:00:00", "LOFT", "7"),
		rec("2024-04-30 09:00:00", "Roots", "1"),
		rec("2024-05-14 10:00:00", "Unknown", "3"),
		rec("yesterday", "Roots", "2"),
	}
	table := testTable()

	thisWeek := Filter(records, Query{Period: PeriodThisWeek, Now: testNow}, table)
	assert.Equal(t, []domain.LaunchRecord{records[0]}, thisWeek)

	lastWeek := Filter(records, Query{Period: PeriodLastWeek, Now: testNow}, table)
	assert.Equal(t, []domain.LaunchRecord{records[1]}, lastWeek)

	thisMonth := Filter(records, Query{Period: PeriodThisMonth, Now: testNow}, table)
	assert.Len(t, thisMonth, 3)

	allTime := Filter(records, Query{Period: PeriodAllTime, Now: testNow}, table)
	assert.Len(t, allTime, 5, "unknown retailer excluded, undated row kept")

	onlyUnknown := Filter(records, Query{Period: PeriodAllTime, Retailers: []string{"Unknown"}, Now: testNow}, table)
	assert.Equal(t, []domain.LaunchRecord{records[4]}, onlyUnknown)
}

func TestSortByDateDesc(t *testing.T) {
	records := []domain.LaunchRecord{
		rec("2024-05-01 09:00:00", "A", "1"),
		rec("garbage", "B", "1"),
		rec("2024-05-03 09:00:00", "C", "1"),
	}
	SortByDateDesc(records)

	assert.Equal(t, "C", records[0].Retailer)
	assert.Equal(t, "A", records[1].Retailer)
	assert.Equal(t, "B", records[2].Retailer)
}

func TestSummarize(t *testing.T) {
	table := testTable()
	filtered := []domain.LaunchRecord{
		rec("2024-05-14 09:00:00", "Roots", "10"),
		rec("2024-05-14 09:00:00", "Roots", "5"),
		rec("2024-05-13 09:00:00", "Madewell", "4"),
		rec("2024-05-13 09:00:00", "LOFT", "n/a"),
	}
	q := Query{Period: PeriodThisWeek, Now: testNow}

	s := Summarize(filtered, q, table)
	assert.Equal(t, 19, s.TotalPages)
	assert.Equal(t, 4, s.TotalLaunches)
	assert.Equal(t, 3, s.ActiveRetailers)
	assert.Equal(t, []RetailerVolume{
		{Retailer: "LOFT", Pages: 0},
		{Retailer: "Madewell", Pages: 4},
		{Retailer: "Roots", Pages: 15},
	}, s.Volume)
	assert.Equal(t, []RetailerSchedule{
		{Retailer: "Roots", Schedule: "Monthly"},
		{Retailer: "Madewell", Schedule: "Weekly/Biweekly"},
		{Retailer: "LOFT", Schedule: "Monthly"},
	}, s.Schedules)
}

func TestSummarize_LargeSelectionOmitsSchedules(t *testing.T) {
	s := Summarize(nil, Query{Period: PeriodAllTime, Now: testNow}, retailer.Default())
	assert.Empty(t, s.Schedules)
	assert.Equal(t, 0, s.TotalLaunches)
	assert.Empty(t, s.Volume)
}
