package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/BarkinBalci/launch-tracker/internal/analytics"
	"github.com/BarkinBalci/launch-tracker/internal/blob/backend"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
)

var showFlags struct {
	period    string
	retailers []string
	markdown  bool
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize and list logged launches",
	RunE:  runShow,
}

func init() {
	f := showCmd.Flags()
	f.StringVar(&showFlags.period, "period", string(analytics.PeriodThisWeek), "this_week, last_week, this_month or all_time")
	f.StringSliceVar(&showFlags.retailers, "retailer", nil, "Retailers to include (repeatable); defaults to all")
	f.BoolVar(&showFlags.markdown, "markdown", false, "Render tables as Markdown")
}

func runShow(cmd *cobra.Command, _ []string) error {
	period, err := analytics.ParsePeriod(showFlags.period)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	retailers, err := retailer.Load(cfg.Service.RetailersFile)
	if err != nil {
		return fmt.Errorf("load retailers: %w", err)
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

	q := analytics.Query{Period: period, Retailers: showFlags.retailers, Now: time.Now()}
	filtered := analytics.Filter(records, q, retailers)
	analytics.SortByDateDesc(filtered)
	summary := analytics.Summarize(filtered, q, retailers)

	out := cmd.OutOrStdout()
	writeSummary(out, summary)
	fmt.Fprintln(out)
	fmt.Fprintln(out, render(launchTable(filtered), showFlags.markdown))
	return nil
}

func writeSummary(out io.Writer, s *analytics.Summary) {
	fmt.Fprintf(out, "Period:           %s\n", s.Period)
	fmt.Fprintf(out, "Total pages:      %d\n", s.TotalPages)
	fmt.Fprintf(out, "Total launches:   %d\n", s.TotalLaunches)
	fmt.Fprintf(out, "Active retailers: %d\n", s.ActiveRetailers)

	if len(s.Volume) > 0 {
		fmt.Fprintln(out)
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Retailer", "Pages"})
		for _, v := range s.Volume {
			t.AppendRow(table.Row{v.Retailer, v.Pages})
		}
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
		fmt.Fprintln(out, render(t, showFlags.markdown))
	}

	if len(s.Schedules) > 0 {
		fmt.Fprintln(out)
		for _, sc := range s.Schedules {
			fmt.Fprintf(out, "%s: %s\n", sc.Retailer, sc.Schedule)
		}
	}
}

func launchTable(records []domain.LaunchRecord) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Date", "Retailer", "Tranche", "Pages", "Approver", "Link"})
	for _, r := range records {
		t.AppendRow(table.Row{r.Date, r.Retailer, r.Tranche, r.PageCount, r.Approver, r.SourceLink})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 6, WidthMax: 60},
	})
	return t
}

func render(t table.Writer, markdown bool) string {
	if markdown {
		return t.RenderMarkdown()
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}
