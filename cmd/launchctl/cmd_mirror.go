package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/BarkinBalci/launch-tracker/internal/analytics"
	"github.com/BarkinBalci/launch-tracker/internal/blob/backend"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/repository"
	chrepo "github.com/BarkinBalci/launch-tracker/internal/repository/clickhouse"
)

var mirrorFlags struct {
	period string
}

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Backfill the launch log into ClickHouse and report volume from it",
	Long: "mirror copies every row of the launch log into the ClickHouse reporting table.\n" +
		"Rows already mirrored collapse on merge, so the command can be re-run safely.",
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().StringVar(&mirrorFlags.period, "period", string(analytics.PeriodAllTime), "Period to report after the backfill")
}

// toLaunches converts log rows, returning how many were skipped for unparseable dates.
func toLaunches(records []domain.LaunchRecord, loc *time.Location) ([]repository.Launch, int) {
	launches := make([]repository.Launch, 0, len(records))
	skipped := 0
	for _, rec := range records {
		l, err := repository.LaunchFromRecord("", rec, loc)
		if err != nil {
			skipped++
			continue
		}
		launches = append(launches, l)
	}
	return launches, skipped
}

// reportWindow bounds an analytics period for a ClickHouse DateTime query.
func reportWindow(p analytics.Period, now time.Time) (time.Time, time.Time) {
	start, end, bounded := analytics.Window(p, now)
	if !bounded {
		return time.Unix(0, 0), now.Add(24 * time.Hour)
	}
	return start, end
}

func runMirror(cmd *cobra.Command, _ []string) error {
	period, err := analytics.ParsePeriod(mirrorFlags.period)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.ClickHouse.Enabled() {
		return errors.New("CLICKHOUSE_HOST is required to mirror launches")
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	s, closeStore, err := backend.OpenStore(cmd.Context(), cfg, nil, log)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := s.Records(cmd.Context())
	if err != nil {
		return err
	}

	repo, err := chrepo.Open(cmd.Context(), cfg.ClickHouse, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	launches, skipped := toLaunches(records, time.Local)
	inserted, err := repo.InsertLaunches(cmd.Context(), launches)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Mirrored %d launches (%d skipped with unreadable dates)\n\n", inserted, skipped)

	from, to := reportWindow(period, time.Now())
	volume, err := repo.PagesByRetailer(cmd.Context(), from, to)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Retailer", "Launches", "Pages"})
	for _, v := range volume {
		t.AppendRow(table.Row{v.Retailer, v.Launches, v.Pages})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	fmt.Fprintln(out, render(t, false))
	return nil
}
