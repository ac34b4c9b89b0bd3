package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/BarkinBalci/launch-tracker/internal/retailer"
)

var retailersCmd = &cobra.Command{
	Use:   "retailers",
	Short: "List configured retailers in matching order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		retailers, err := retailer.Load(cfg.Service.RetailersFile)
		if err != nil {
			return fmt.Errorf("load retailers: %w", err)
		}

		t := table.NewWriter()
		t.AppendHeader(table.Row{"#", "Retailer", "Keywords", "Schedule"})
		for i, e := range retailers.Entries {
			t.AppendRow(table.Row{i + 1, e.Name, strings.Join(e.Keywords, ", "), retailers.Schedule(e.Name)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), render(t, false))
		return nil
	},
}
