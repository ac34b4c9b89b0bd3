package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
)

// Period selects the date window of a dashboard view.
type Period string

const (
	PeriodThisWeek  Period = "this_week"
	PeriodLastWeek  Period = "last_week"
	PeriodThisMonth Period = "this_month"
	PeriodAllTime   Period = "all_time"
)

// scheduleDetailLimit is the largest selection for which schedule notes are listed.
const scheduleDetailLimit = 9

// ParsePeriod validates a period name. The empty string selects this week.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodThisWeek, nil
	case PeriodThisWeek, PeriodLastWeek, PeriodThisMonth, PeriodAllTime:
		return p, nil
	default:
		return "", fmt.Errorf("invalid period: %s (supported: this_week, last_week, this_month, all_time)", s)
	}
}

// Query describes one dashboard view.
type Query struct {
	Period Period
	// Retailers restricts the view; empty means every configured retailer.
	Retailers []string
	Now       time.Time
}

// RetailerVolume is the page total of one retailer.
type RetailerVolume struct {
	Retailer string `json:"retailer"`
	Pages    int    `json:"pages"`
}

// RetailerSchedule is the launch cadence note of one retailer.
type RetailerSchedule struct {
	Retailer string `json:"retailer"`
	Schedule string `json:"schedule"`
}

// Summary holds the headline numbers of a view.
type Summary struct {
	Period          Period             `json:"period"`
	TotalPages      int                `json:"total_pages"`
	TotalLaunches   int                `json:"total_launches"`
	ActiveRetailers int                `json:"active_retailers"`
	Volume          []RetailerVolume   `json:"volume"`
	Schedules       []RetailerSchedule `json:"schedules,omitempty"`
}

// Window returns the [start, end) range of a period relative to now.
// Weeks start on Monday. bounded is false for all_time.
func Window(p Period, now time.Time) (start, end time.Time, bounded bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysSinceMonday := (int(midnight.Weekday()) + 6) % 7
	monday := midnight.AddDate(0, 0, -daysSinceMonday)

	switch p {
	case PeriodThisWeek:
		return monday, monday.AddDate(0, 0, 7), true
	case PeriodLastWeek:
		return monday.AddDate(0, 0, -7), monday, true
	case PeriodThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Selection resolves the retailer filter of q against the table.
func Selection(q Query, table *retailer.Table) []string {
	if len(q.Retailers) > 0 {
		return q.Retailers
	}
	return table.Names()
}

// Filter returns the records inside the query's window and retailer selection.
// Records whose date cannot be parsed only appear in all_time views.
func Filter(records []domain.LaunchRecord, q Query, table *retailer.Table) []domain.LaunchRecord {
	selected := make(map[string]bool)
	for _, name := range Selection(q, table) {
		selected[name] = true
	}
	start, end, bounded := Window(q.Period, q.Now)

	out := make([]domain.LaunchRecord, 0, len(records))
	for _, rec := range records {
		if !selected[rec.Retailer] {
			continue
		}
		if bounded {
			at, err := rec.ConfirmedAt(q.Now.Location())
			if err != nil || at.Before(start) || !at.Before(end) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// SortByDateDesc orders records newest first; undated records go last.
func SortByDateDesc(records []domain.LaunchRecord) {
	slices.SortStableFunc(records, func(a, b domain.LaunchRecord) int {
		ta, errA := a.ConfirmedAt(time.UTC)
		tb, errB := b.ConfirmedAt(time.UTC)
		switch {
		case errA != nil && errB != nil:
			return 0
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}
		return tb.Compare(ta)
	})
}

// Summarize computes the headline numbers of already filtered records.
func Summarize(filtered []domain.LaunchRecord, q Query, table *retailer.Table) *Summary {
	pages := make(map[string]int)
	total := 0
	for _, rec := range filtered {
		n := rec.Pages()
		pages[rec.Retailer] += n
		total += n
	}

	volume := make([]RetailerVolume, 0, len(pages))
	for name, n := range pages {
		volume = append(volume, RetailerVolume{Retailer: name, Pages: n})
	}
	slices.SortFunc(volume, func(a, b RetailerVolume) int {
		return cmp.Or(cmp.Compare(a.Pages, b.Pages), cmp.Compare(a.Retailer, b.Retailer))
	})

	summary := &Summary{
		Period:          q.Period,
		TotalPages:      total,
		TotalLaunches:   len(filtered),
		ActiveRetailers: len(pages),
		Volume:          volume,
	}

	if selection := Selection(q, table); len(selection) <= scheduleDetailLimit {
		for _, name := range selection {
			summary.Schedules = append(summary.Schedules, RetailerSchedule{
				Retailer: name,
				Schedule: table.Schedule(name),
			})
		}
	}

	return summary
}
