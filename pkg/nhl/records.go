package nhl

import (
	"fmt"
	"strconv"
)

// Player type values stored alongside player records.
const (
	PlayerTypeSkater = "skater"
	PlayerTypeGoalie = "goalie"
)

// Team is a flat team record keyed by abbreviation. The NHL API has no
// standalone team endpoint; teams are derived from standings rows, which is
// why the record carries the season counting stats too.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	Wins         *int   `json:"wins"`
	Losses       *int   `json:"losses"`
	OTLosses     *int   `json:"ot_losses"`
	Points       *int   `json:"points"`
	GamesPlayed  *int   `json:"games_played"`
}

// Player is a flat leaderboard row for a skater or goalie. Skaters carry
// goals/assists/points, goalies carry wins; the absent group is omitted
// from the stored raw record.
type Player struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	Goals       *int   `json:"goals,omitempty"`
	Assists     *int   `json:"assists,omitempty"`
	Points      *int   `json:"points,omitempty"`
	Wins        *int   `json:"wins,omitempty"`
	GamesPlayed *int   `json:"games_played"`
	PlayerType  string `json:"player_type"`
}

// Game is a flat schedule row. Scores are nil for games not yet played.
type Game struct {
	ID        int    `json:"id"`
	Season    string `json:"season"`
	Date      string `json:"date"`
	GameType  int    `json:"game_type"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	GameState string `json:"game_state"`
	Venue     string `json:"venue"`
}

// Standing is one team's row in the league standings.
type Standing struct {
	Team           string  `json:"team"`
	Conference     string  `json:"conference"`
	Division       string  `json:"division"`
	GamesPlayed    int     `json:"games_played"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	OTLosses       int     `json:"ot_losses"`
	Points         int     `json:"points"`
	PointsPct      float64 `json:"points_pct"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDiff       int     `json:"goal_diff"`
	RegulationWins int     `json:"regulation_wins"`
	Streak         string  `json:"streak"`
}

// GoalDiffString renders the goal differential for console display:
// positive values get an explicit plus sign, zero stays "0".
func (s Standing) GoalDiffString() string {
	if s.GoalDiff > 0 {
		return fmt.Sprintf("+%d", s.GoalDiff)
	}
	return strconv.Itoa(s.GoalDiff)
}

// Standings is the full league table as of a given date.
type Standings struct {
	AsOf  string     `json:"as_of"`
	Teams []Standing `json:"teams"`
}

// PlayerDetail is the flat projection of a player landing page.
type PlayerDetail struct {
	ID            int            `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	BirthDate     string         `json:"birth_date"`
	BirthCity     string         `json:"birth_city"`
	BirthCountry  string         `json:"birth_country"`
	HeightInches  *int           `json:"height_inches"`
	WeightPounds  *int           `json:"weight_pounds"`
	Position      string         `json:"position"`
	ShootsCatches string         `json:"shoots_catches"`
	Team          string         `json:"team"`
	JerseyNumber  *int           `json:"jersey_number"`
	DraftYear     *int           `json:"draft_year"`
	DraftRound    *int           `json:"draft_round"`
	DraftPick     *int           `json:"draft_pick"`
	CareerStats   map[string]any `json:"career_stats,omitempty"`
}

// GameStats holds one team's counting stats for a single game.
type GameStats struct {
	GameID                 int    `json:"game_id"`
	TeamAbbrev             string `json:"team_abbrev"`
	IsHome                 bool   `json:"is_home"`
	Goals                  int    `json:"goals"`
	Shots                  int    `json:"shots"`
	Hits                   int    `json:"hits"`
	Blocks                 int    `json:"blocks"`
	PIM                    int    `json:"pim"`
	PowerplayGoals         int    `json:"powerplay_goals"`
	PowerplayOpportunities int    `json:"powerplay_opportunities"`
	FaceoffWins            int    `json:"faceoff_wins"`
	FaceoffTotal           int    `json:"faceoff_total"`
	Takeaways              int    `json:"takeaways"`
	Giveaways              int    `json:"giveaways"`
}

// FaceoffPct returns the faceoff win percentage, or nil when no faceoffs
// were taken. A zero total means the percentage is absent, not zero.
func (g GameStats) FaceoffPct() *float64 {
	if g.FaceoffTotal == 0 {
		return nil
	}
	pct := float64(g.FaceoffWins) / float64(g.FaceoffTotal) * 100
	return &pct
}
