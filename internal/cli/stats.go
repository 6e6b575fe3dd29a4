package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pucklab/nhl-scraper/pkg/storage"
)

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts for the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			renderStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func renderStats(w io.Writer, stats storage.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Entity", "Count"})
	t.AppendRow(table.Row{"Teams", stats.Teams})
	t.AppendRow(table.Row{"Players", stats.Players})
	t.AppendRow(table.Row{"Games", stats.Games})
	t.SetStyle(table.StyleLight)
	t.Render()
}
