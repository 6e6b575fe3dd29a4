package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pucklab/nhl-scraper/pkg/nhl"
	"github.com/pucklab/nhl-scraper/pkg/storage"
)

func (a *app) newScrapeTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape-teams",
		Short: "Scrape all NHL teams into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withScraperAndStore(cmd.Context(), func(ctx context.Context, s *nhl.Scraper, store *storage.Store) error {
				n, err := scrapeTeams(ctx, s, store)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d teams\n", n)
				return nil
			})
		},
	}
}

func (a *app) newScrapePlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape-players",
		Short: "Scrape skater and goalie season stats into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withScraperAndStore(cmd.Context(), func(ctx context.Context, s *nhl.Scraper, store *storage.Store) error {
				n, err := scrapePlayers(ctx, s, store, a.season)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d players\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&a.season, "season", "", "season to scrape, e.g. 20242025 (default current)")
	return cmd
}

func (a *app) newScrapeGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape-games",
		Short: "Scrape the season schedule into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withScraperAndStore(cmd.Context(), func(ctx context.Context, s *nhl.Scraper, store *storage.Store) error {
				n, err := scrapeGames(ctx, s, store, a.season)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d games\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&a.season, "season", "", "season to scrape, e.g. 20242025 (default current)")
	return cmd
}

func (a *app) newScrapeAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape-all",
		Short: "Scrape teams, players and games in one run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withScraperAndStore(cmd.Context(), func(ctx context.Context, s *nhl.Scraper, store *storage.Store) error {
				teams, err := scrapeTeams(ctx, s, store)
				if err != nil {
					return fmt.Errorf("scrape teams: %w", err)
				}
				players, err := scrapePlayers(ctx, s, store, a.season)
				if err != nil {
					return fmt.Errorf("scrape players: %w", err)
				}
				games, err := scrapeGames(ctx, s, store, a.season)
				if err != nil {
					return fmt.Errorf("scrape games: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d teams, %d players, %d games\n", teams, players, games)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&a.season, "season", "", "season to scrape, e.g. 20242025 (default current)")
	return cmd
}

// withScraperAndStore wires up a scrape session and the database, and
// tears both down when fn returns.
func (a *app) withScraperAndStore(ctx context.Context, fn func(context.Context, *nhl.Scraper, *storage.Store) error) error {
	scraper, err := a.newScraper()
	if err != nil {
		return err
	}
	defer scraper.Close()

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, scraper, store)
}

func scrapeTeams(ctx context.Context, s *nhl.Scraper, store *storage.Store) (int, error) {
	teams, err := s.ScrapeTeams(ctx)
	if err != nil {
		return 0, err
	}
	return store.UpsertTeams(ctx, teams)
}

func scrapePlayers(ctx context.Context, s *nhl.Scraper, store *storage.Store, season string) (int, error) {
	players, err := s.ScrapePlayers(ctx, season)
	if err != nil {
		return 0, err
	}
	return store.UpsertPlayers(ctx, players)
}

func scrapeGames(ctx context.Context, s *nhl.Scraper, store *storage.Store, season string) (int, error) {
	games, err := s.ScrapeGames(ctx, season)
	if err != nil {
		return 0, err
	}
	return store.UpsertGames(ctx, games)
}
