package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BarkinBalci/launch-tracker/internal/parser"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
)

var parseCmd = &cobra.Command{
	Use:   "parse <message text>",
	Short: "Show what the bot would detect in a chat message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		retailers, err := retailer.Load(cfg.Service.RetailersFile)
		if err != nil {
			return fmt.Errorf("load retailers: %w", err)
		}
		p, err := parser.New(retailers)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		d := p.Parse(text)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Announcement: %t\n", parser.IsLaunchAnnouncement(text))
		fmt.Fprintf(out, "Retailer:     %s\n", d.Retailer)
		fmt.Fprintf(out, "Tranche:      %s\n", d.Tranche)
		fmt.Fprintf(out, "Page count:   %s\n", d.PageCount)
		return nil
	},
}
