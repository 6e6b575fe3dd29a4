// Package storage persists scraped records in a local SQLite database.
//
// Writes are idempotent upserts keyed by each record's natural key, so
// repeated scrape runs converge instead of duplicating rows. Every row
// also keeps the normalized record as a JSON blob for ad-hoc queries.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/pucklab/nhl-scraper/pkg/logging"
	"github.com/pucklab/nhl-scraper/pkg/nhl"
)

// MemoryPath opens an in-memory database, used by tests.
const MemoryPath = ":memory:"

// Store wraps the SQLite database holding scraped records.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Stats summarizes row counts per entity.
type Stats struct {
	Teams   int
	Players int
	Games   int
}

// Open opens (creating if needed) the database at path and applies the
// schema. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent upserts and keeps :memory: coherent.
	db.SetMaxOpenConns(1)

	store := &Store{
		db:     db,
		logger: logging.NewLogger("storage").With().Str("path", path).Logger(),
	}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS teams (
			abbreviation TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			conference   TEXT,
			division     TEXT,
			wins         INTEGER,
			losses       INTEGER,
			ot_losses    INTEGER,
			points       INTEGER,
			games_played INTEGER,
			raw_data     TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			id           INTEGER PRIMARY KEY,
			name         TEXT NOT NULL,
			team_abbrev  TEXT,
			position     TEXT,
			player_type  TEXT NOT NULL,
			goals        INTEGER,
			assists      INTEGER,
			points       INTEGER,
			wins         INTEGER,
			games_played INTEGER,
			raw_data     TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id         INTEGER PRIMARY KEY,
			season     TEXT NOT NULL,
			game_date  TEXT,
			game_type  INTEGER,
			home_team  TEXT,
			away_team  TEXT,
			home_score INTEGER,
			away_score INTEGER,
			game_state TEXT,
			raw_data   TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_players_team ON players(team_abbrev)`,
		`CREATE INDEX IF NOT EXISTS idx_games_season ON games(season)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// UpsertTeams writes teams in one transaction. Records without an
// abbreviation are skipped. Returns the number of rows written.
func (s *Store) UpsertTeams(ctx context.Context, teams []nhl.Team) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO teams (abbreviation, name, conference, division, wins, losses, ot_losses, points, games_played, raw_data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(abbreviation) DO UPDATE SET
			name = excluded.name,
			conference = excluded.conference,
			division = excluded.division,
			wins = excluded.wins,
			losses = excluded.losses,
			ot_losses = excluded.ot_losses,
			points = excluded.points,
			games_played = excluded.games_played,
			raw_data = excluded.raw_data,
			updated_at = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, team := range teams {
		if team.Abbreviation == "" {
			s.logger.Warn().Str("name", team.Name).Msg("skipping team without abbreviation")
			continue
		}
		raw, err := json.Marshal(team)
		if err != nil {
			return 0, fmt.Errorf("marshal team %s: %w", team.Abbreviation, err)
		}
		if _, err := stmt.ExecContext(ctx,
			team.Abbreviation, team.Name, team.Conference, team.Division,
			team.Wins, team.Losses, team.OTLosses, team.Points, team.GamesPlayed,
			string(raw), now,
		); err != nil {
			return 0, fmt.Errorf("upsert team %s: %w", team.Abbreviation, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug().Int("count", written).Msg("upserted teams")
	return written, nil
}

// UpsertPlayers writes players in one transaction. Records without an id
// are skipped. Returns the number of rows written.
func (s *Store) UpsertPlayers(ctx context.Context, players []nhl.Player) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (id, name, team_abbrev, position, player_type, goals, assists, points, wins, games_played, raw_data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			team_abbrev = excluded.team_abbrev,
			position = excluded.position,
			player_type = excluded.player_type,
			goals = excluded.goals,
			assists = excluded.assists,
			points = excluded.points,
			wins = excluded.wins,
			games_played = excluded.games_played,
			raw_data = excluded.raw_data,
			updated_at = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, player := range players {
		if player.ID == 0 {
			s.logger.Warn().Str("name", player.Name).Msg("skipping player without id")
			continue
		}
		raw, err := json.Marshal(player)
		if err != nil {
			return 0, fmt.Errorf("marshal player %d: %w", player.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			player.ID, player.Name, player.Team, player.Position, player.PlayerType,
			player.Goals, player.Assists, player.Points, player.Wins, player.GamesPlayed,
			string(raw), now,
		); err != nil {
			return 0, fmt.Errorf("upsert player %d: %w", player.ID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug().Int("count", written).Msg("upserted players")
	return written, nil
}

// UpsertGames writes games in one transaction. Records without an id are
// skipped. Returns the number of rows written.
func (s *Store) UpsertGames(ctx context.Context, games []nhl.Game) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games (id, season, game_date, game_type, home_team, away_team, home_score, away_score, game_state, raw_data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			season = excluded.season,
			game_date = excluded.game_date,
			game_type = excluded.game_type,
			home_team = excluded.home_team,
			away_team = excluded.away_team,
			home_score = excluded.home_score,
			away_score = excluded.away_score,
			game_state = excluded.game_state,
			raw_data = excluded.raw_data,
			updated_at = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	written := 0
	for _, game := range games {
		if game.ID == 0 {
			s.logger.Warn().Str("date", game.Date).Msg("skipping game without id")
			continue
		}
		raw, err := json.Marshal(game)
		if err != nil {
			return 0, fmt.Errorf("marshal game %d: %w", game.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			game.ID, game.Season, game.Date, game.GameType,
			game.HomeTeam, game.AwayTeam, game.HomeScore, game.AwayScore, game.GameState,
			string(raw), now,
		); err != nil {
			return 0, fmt.Errorf("upsert game %d: %w", game.ID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug().Int("count", written).Msg("upserted games")
	return written, nil
}

// Stats returns row counts per entity.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	counts := []struct {
		table string
		dest  *int
	}{
		{"teams", &stats.Teams},
		{"players", &stats.Players},
		{"games", &stats.Games},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return stats, nil
}
