package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BarkinBalci/launch-tracker/internal/blob/backend"
	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
)

var appendFlags struct {
	retailer string
	tranche  string
	pages    int
	approver string
	link     string
}

var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Log a launch by hand",
	RunE:  runAppend,
}

func init() {
	f := appendCmd.Flags()
	f.StringVar(&appendFlags.retailer, "retailer", "", "Canonical retailer name (required)")
	f.StringVar(&appendFlags.tranche, "tranche", domain.UnknownTranche, "Tranche, e.g. T3")
	f.IntVar(&appendFlags.pages, "pages", 0, "Page count")
	f.StringVar(&appendFlags.approver, "approver", "", "Approver name (required)")
	f.StringVar(&appendFlags.link, "link", domain.LinkUnavailable, "Link to the announcement")

	_ = appendCmd.MarkFlagRequired("retailer")
	_ = appendCmd.MarkFlagRequired("approver")
}

func runAppend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	table, err := retailer.Load(cfg.Service.RetailersFile)
	if err != nil {
		return fmt.Errorf("load retailers: %w", err)
	}
	if !table.Contains(appendFlags.retailer) {
		return fmt.Errorf("unknown retailer %q (see launchctl retailers)", appendFlags.retailer)
	}
	if appendFlags.pages < 0 {
		return fmt.Errorf("pages must not be negative")
	}

	s, closeStore, err := backend.OpenStore(cmd.Context(), cfg, nil, log)
	if err != nil {
		return err
	}
	defer closeStore()

	rec := domain.NewLaunchRecord(time.Now(),
		appendFlags.retailer,
		appendFlags.tranche,
		fmt.Sprint(appendFlags.pages),
		appendFlags.approver,
		appendFlags.link)

	if err := s.Append(cmd.Context(), rec); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged %s %s (%s pages) by %s\n", rec.Retailer, rec.Tranche, rec.PageCount, rec.Approver)
	return nil
}
