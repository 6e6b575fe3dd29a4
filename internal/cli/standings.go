package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pucklab/nhl-scraper/pkg/nhl"
)

// divisionOrder fixes the display order of the four divisions.
var divisionOrder = []string{"Atlantic", "Metropolitan", "Central", "Pacific"}

func (a *app) newStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show the current league standings by division",
		RunE: func(cmd *cobra.Command, args []string) error {
			scraper, err := a.newScraper()
			if err != nil {
				return err
			}
			defer scraper.Close()

			standings, err := scraper.ScrapeStandings(cmd.Context())
			if err != nil {
				return err
			}

			renderStandings(cmd.OutOrStdout(), standings)
			return nil
		},
	}
}

func renderStandings(w io.Writer, standings *nhl.Standings) {
	fmt.Fprintf(w, "NHL Standings (as of %s)\n", standings.AsOf)

	byDivision := make(map[string][]nhl.Standing)
	for _, s := range standings.Teams {
		byDivision[s.Division] = append(byDivision[s.Division], s)
	}

	divisions := make([]string, 0, len(byDivision))
	for _, d := range divisionOrder {
		if _, ok := byDivision[d]; ok {
			divisions = append(divisions, d)
		}
	}
	// divisions the fixed order doesn't know about go last, alphabetically
	var extra []string
	for d := range byDivision {
		if !contains(divisionOrder, d) {
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	divisions = append(divisions, extra...)

	for _, division := range divisions {
		teams := byDivision[division]
		sort.SliceStable(teams, func(i, j int) bool {
			if teams[i].Points != teams[j].Points {
				return teams[i].Points > teams[j].Points
			}
			return teams[i].PointsPct > teams[j].PointsPct
		})

		fmt.Fprintf(w, "\n%s\n", division)
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Team", "GP", "W", "L", "OTL", "PTS", "P%", "DIFF", "STRK"})
		for _, s := range teams {
			t.AppendRow(table.Row{
				s.Team, s.GamesPlayed, s.Wins, s.Losses, s.OTLosses,
				s.Points, fmt.Sprintf("%.3f", s.PointsPct), s.GoalDiffString(), s.Streak,
			})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
