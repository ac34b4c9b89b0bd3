package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/config"
	"github.com/BarkinBalci/launch-tracker/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	backend string
	path    string
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "launchctl",
	Short: "Inspect and edit the launch log",
	Long:  "launchctl reads the launch log, appends launches by hand and checks\nhow announcements would be parsed, using the same configuration as the bot.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.backend, "backend", "", "Store backend (memory, github, s3, redis); defaults to STORE_BACKEND")
	f.StringVar(&rootFlags.path, "path", "", "Log path inside the backend; defaults to STORE_PATH")
	f.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log store activity to stderr")

	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(retailersCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.Version = version
}

// loadConfig applies the persistent flags on top of the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(func(c *config.Config) {
		if rootFlags.backend != "" {
			c.Store.Backend = rootFlags.backend
		}
		if rootFlags.path != "" {
			c.Store.Path = rootFlags.path
		}
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if !rootFlags.verbose {
		return zap.NewNop(), nil
	}
	return logger.New(cfg.Service.Environment, "launchctl")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
