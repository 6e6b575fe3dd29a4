// Package cli implements the nhl-scraper command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pucklab/nhl-scraper/internal/config"
	"github.com/pucklab/nhl-scraper/pkg/logging"
	"github.com/pucklab/nhl-scraper/pkg/nhl"
	"github.com/pucklab/nhl-scraper/pkg/storage"
)

// app carries resolved configuration shared by all commands.
type app struct {
	cfg *config.Config

	// flags
	configFile string
	verbose    bool
	jsonLogs   bool
	dbPath     string
	season     string
}

// NewRootCmd builds the nhl-scraper command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "nhl-scraper",
		Short: "Scrape NHL teams, players, games and standings into SQLite",
		Long: `nhl-scraper pulls data from the official NHL web API and stores it
in a local SQLite database. Requests are rate limited and retried so
repeated runs stay polite and idempotent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logging.CLIConfig(a.verbose, a.jsonLogs))

			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			if a.dbPath != "" {
				cfg.DatabasePath = a.dbPath
			}
			a.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default searches ./nhl-scraper.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&a.jsonLogs, "json-logs", false, "emit logs as JSON instead of console format")
	pf.StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")

	root.AddCommand(
		a.newScrapeTeamsCmd(),
		a.newScrapePlayersCmd(),
		a.newScrapeGamesCmd(),
		a.newScrapeAllCmd(),
		a.newStandingsCmd(),
		a.newPlayerCmd(),
		a.newStatsCmd(),
	)

	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// newScraper opens a scrape session from the resolved config.
func (a *app) newScraper() (*nhl.Scraper, error) {
	return nhl.NewScraper(nhl.Options{
		BaseURL:           a.cfg.BaseURL,
		UserAgent:         a.cfg.UserAgent,
		RequestsPerSecond: a.cfg.RequestsPerSecond,
	})
}

// openStore opens the configured database.
func (a *app) openStore() (*storage.Store, error) {
	return storage.Open(a.cfg.DatabasePath)
}
