package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pucklab/nhl-scraper/pkg/nhl"
)

func (a *app) newPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <player-id>",
		Short: "Show detailed info for one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid player id %q", args[0])
			}

			scraper, err := a.newScraper()
			if err != nil {
				return err
			}
			defer scraper.Close()

			detail, err := scraper.ScrapePlayerDetails(cmd.Context(), playerID)
			if err != nil {
				return err
			}

			renderPlayerDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

func renderPlayerDetail(w io.Writer, d *nhl.PlayerDetail) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRow(table.Row{"Name", d.FirstName + " " + d.LastName})
	t.AppendRow(table.Row{"Team", d.Team})
	t.AppendRow(table.Row{"Position", d.Position})
	t.AppendRow(table.Row{"Number", intCell(d.JerseyNumber)})
	t.AppendRow(table.Row{"Shoots", d.ShootsCatches})
	t.AppendRow(table.Row{"Born", fmt.Sprintf("%s, %s %s", d.BirthDate, d.BirthCity, d.BirthCountry)})
	t.AppendRow(table.Row{"Height", heightCell(d.HeightInches)})
	t.AppendRow(table.Row{"Weight", weightCell(d.WeightPounds)})
	t.AppendRow(table.Row{"Draft", draftCell(d)})
	t.SetStyle(table.StyleLight)
	t.Render()
}

func intCell(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func heightCell(inches *int) string {
	if inches == nil {
		return "-"
	}
	return fmt.Sprintf("%d'%d\"", *inches/12, *inches%12)
}

func weightCell(pounds *int) string {
	if pounds == nil {
		return "-"
	}
	return fmt.Sprintf("%d lb", *pounds)
}

func draftCell(d *nhl.PlayerDetail) string {
	if d.DraftYear == nil {
		return "Undrafted"
	}
	out := strconv.Itoa(*d.DraftYear)
	if d.DraftRound != nil {
		out += fmt.Sprintf(", round %d", *d.DraftRound)
	}
	if d.DraftPick != nil {
		out += fmt.Sprintf(", pick %d", *d.DraftPick)
	}
	return out
}
