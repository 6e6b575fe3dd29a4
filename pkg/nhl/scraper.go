// Package nhl scrapes the official NHL web API into flat domain records.
//
// The Scraper composes the generic scrape session from pkg/client (rate
// limiter + retrying executor) with NHL-specific endpoint knowledge and
// normalization. One Scraper holds one open session; all its requests
// share the session's rate limiter.
package nhl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/pucklab/nhl-scraper/pkg/client"
	"github.com/pucklab/nhl-scraper/pkg/logging"
	"github.com/pucklab/nhl-scraper/pkg/pagination"
)

const (
	// SourceName tags records, logs and metrics from this source.
	SourceName = "nhl_api"

	// DefaultBaseURL is the official NHL web API.
	DefaultBaseURL = "https://api-web.nhle.com/v1"

	// DefaultUserAgent identifies this client upstream.
	DefaultUserAgent = "nhl-scraper/0.1.0 (analytics research project)"

	// defaultRequestsPerSecond keeps the scraper polite.
	defaultRequestsPerSecond = 1.0
)

// Options configures a Scraper. The zero value uses the defaults above.
type Options struct {
	BaseURL           string
	UserAgent         string
	RequestsPerSecond float64
}

// Scraper is the NHL API source client.
type Scraper struct {
	session  *client.Session
	logger   zerolog.Logger
	pageSize int
}

// NewScraper opens a scrape session against the NHL API. The caller owns
// the session lifetime and must release it with Close.
func NewScraper(opts Options) (*Scraper, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	cfg := client.DefaultConfig(SourceName, baseURL, userAgent)
	cfg.RequestsPerSecond = defaultRequestsPerSecond
	if opts.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = opts.RequestsPerSecond
	}

	session, err := client.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("open nhl session: %w", err)
	}

	return &Scraper{
		session:  session,
		logger:   logging.NewLogger("scraper").With().Str("source", SourceName).Logger(),
		pageSize: pagination.DefaultPageSize,
	}, nil
}

// Close releases the scrape session. The Scraper must not be used after
// Close.
func (s *Scraper) Close() error {
	return s.session.Close()
}

// ScrapeTeams fetches all NHL teams. Teams are derived from the current
// standings, one record per standings row.
func (s *Scraper) ScrapeTeams(ctx context.Context) ([]Team, error) {
	data, err := s.session.GetJSON(ctx, "/standings/now", nil)
	if err != nil {
		return nil, err
	}

	var teams []Team
	for _, item := range getSlice(data, "standings") {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		teams = append(teams, normalizeTeam(rec))
	}

	s.logger.Info().Int("count", len(teams)).Msg("scraped teams")
	return teams, nil
}

// ScrapePlayers fetches the season's player stats: paginated skater
// leaders by points followed by goalie leaders by wins. Order is
// skaters-then-goalies, stable within each group as returned by the
// source. An empty season defaults to the current one.
func (s *Scraper) ScrapePlayers(ctx context.Context, season string) ([]Player, error) {
	if season == "" {
		season = CurrentSeason(time.Now())
	}

	skaters, err := s.scrapeSkaterStats(ctx, season)
	if err != nil {
		return nil, err
	}
	goalies, err := s.scrapeGoalieStats(ctx, season)
	if err != nil {
		return nil, err
	}

	players := append(skaters, goalies...)
	s.logger.Info().Int("count", len(players)).Str("season", season).Msg("scraped players")
	return players, nil
}

// scrapeSkaterStats pages through the points leaderboard until a short
// page signals the end.
func (s *Scraper) scrapeSkaterStats(ctx context.Context, season string) ([]Player, error) {
	path := fmt.Sprintf("/skater-stats-leaders/%s/2", season)

	return pagination.Collect(ctx, s.pageSize, func(ctx context.Context, start, limit int) ([]Player, error) {
		query := url.Values{}
		query.Set("categories", "points")
		query.Set("limit", strconv.Itoa(limit))
		query.Set("start", strconv.Itoa(start))

		data, err := s.session.GetJSON(ctx, path, query)
		if err != nil {
			return nil, err
		}

		var batch []Player
		for _, item := range getSlice(data, "points") {
			rec, ok := item.(map[string]any)
			if !ok {
				continue
			}
			batch = append(batch, normalizeSkater(rec))
		}
		return batch, nil
	})
}

// scrapeGoalieStats fetches the wins leaderboard. A single page covers
// every starting goalie in the league, so this is not paginated.
func (s *Scraper) scrapeGoalieStats(ctx context.Context, season string) ([]Player, error) {
	path := fmt.Sprintf("/goalie-stats-leaders/%s/2", season)
	query := url.Values{}
	query.Set("categories", "wins")
	query.Set("limit", strconv.Itoa(s.pageSize))

	data, err := s.session.GetJSON(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var goalies []Player
	for _, item := range getSlice(data, "wins") {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		goalies = append(goalies, normalizeGoalie(rec))
	}
	return goalies, nil
}

// ScrapeGames fetches the season schedule anchored at the season's opening
// week and flattens the nested week->games structure into a single list,
// preserving source order. An empty season defaults to the current one.
func (s *Scraper) ScrapeGames(ctx context.Context, season string) ([]Game, error) {
	if season == "" {
		season = CurrentSeason(time.Now())
	}

	data, err := s.session.GetJSON(ctx, "/schedule/"+seasonStartDate(season), nil)
	if err != nil {
		return nil, err
	}

	var games []Game
	for _, weekItem := range getSlice(data, "gameWeek") {
		week, ok := weekItem.(map[string]any)
		if !ok {
			continue
		}
		for _, gameItem := range getSlice(week, "games") {
			g, ok := gameItem.(map[string]any)
			if !ok {
				continue
			}
			games = append(games, normalizeGame(season, g))
		}
	}

	s.logger.Info().Int("count", len(games)).Str("season", season).Msg("scraped games")
	return games, nil
}

// ScrapeStandings fetches the current league standings.
func (s *Scraper) ScrapeStandings(ctx context.Context) (*Standings, error) {
	data, err := s.session.GetJSON(ctx, "/standings/now", nil)
	if err != nil {
		return nil, err
	}

	standings := &Standings{
		AsOf: getString(data, "standingsDate"),
	}
	for _, item := range getSlice(data, "standings") {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		standings.Teams = append(standings.Teams, normalizeStanding(rec))
	}

	s.logger.Info().Int("count", len(standings.Teams)).Str("as_of", standings.AsOf).Msg("scraped standings")
	return standings, nil
}

// ScrapePlayerDetails fetches detailed info for a single player. Not
// paginated.
func (s *Scraper) ScrapePlayerDetails(ctx context.Context, playerID int) (*PlayerDetail, error) {
	data, err := s.session.GetJSON(ctx, fmt.Sprintf("/player/%d/landing", playerID), nil)
	if err != nil {
		return nil, err
	}

	detail := normalizePlayerDetail(playerID, data)
	return &detail, nil
}
