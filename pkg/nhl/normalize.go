package nhl

import "strings"

// Upstream payloads are loosely typed nested JSON decoded into
// map[string]any. The helpers below project them into flat records
// defensively: missing, null or mistyped fields degrade to zero values or
// nil pointers, never errors. The dynamic representation does not leave
// this file.

func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	v, _ := m[key].(map[string]any)
	return v
}

func getSlice(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	v, _ := m[key].([]any)
	return v
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

// getInt reads a JSON number as an int pointer, nil when absent or not a
// number. encoding/json decodes every JSON number as float64.
func getInt(m map[string]any, key string) *int {
	if m == nil {
		return nil
	}
	f, ok := m[key].(float64)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func getFloat(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	f, _ := m[key].(float64)
	return f
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// localeDefault collapses the API's locale-keyed objects
// ({"default": "Boston Bruins", "fr": ...}) to their "default" value.
func localeDefault(m map[string]any, key string) string {
	return getString(getMap(m, key), "default")
}

// playerName joins the default-locale first and last names with a single
// space and trims. Both missing yields the empty string, not null.
func playerName(rec map[string]any) string {
	first := localeDefault(rec, "firstName")
	last := localeDefault(rec, "lastName")
	return strings.TrimSpace(first + " " + last)
}

// normalizeTeam flattens one standings row into a team record. The
// abbreviation doubles as the record id.
func normalizeTeam(rec map[string]any) Team {
	abbrev := localeDefault(rec, "teamAbbrev")
	return Team{
		ID:           abbrev,
		Name:         localeDefault(rec, "teamName"),
		Abbreviation: abbrev,
		Conference:   getString(rec, "conferenceName"),
		Division:     getString(rec, "divisionName"),
		Wins:         getInt(rec, "wins"),
		Losses:       getInt(rec, "losses"),
		OTLosses:     getInt(rec, "otLosses"),
		Points:       getInt(rec, "points"),
		GamesPlayed:  getInt(rec, "gamesPlayed"),
	}
}

// normalizeSkater flattens one points-leaderboard row. The leaderboard's
// "value" column is the points total.
func normalizeSkater(rec map[string]any) Player {
	return Player{
		ID:          intOrZero(getInt(rec, "playerId")),
		Name:        playerName(rec),
		Team:        getString(rec, "teamAbbrev"),
		Position:    getString(rec, "positionCode"),
		Goals:       getInt(rec, "goals"),
		Assists:     getInt(rec, "assists"),
		Points:      getInt(rec, "value"),
		GamesPlayed: getInt(rec, "gamesPlayed"),
		PlayerType:  PlayerTypeSkater,
	}
}

// normalizeGoalie flattens one wins-leaderboard row.
func normalizeGoalie(rec map[string]any) Player {
	return Player{
		ID:          intOrZero(getInt(rec, "playerId")),
		Name:        playerName(rec),
		Team:        getString(rec, "teamAbbrev"),
		Position:    "G",
		Wins:        getInt(rec, "value"),
		GamesPlayed: getInt(rec, "gamesPlayed"),
		PlayerType:  PlayerTypeGoalie,
	}
}

// normalizeGame flattens one schedule entry. Scores stay nil for games
// that have not been played.
func normalizeGame(season string, g map[string]any) Game {
	home := getMap(g, "homeTeam")
	away := getMap(g, "awayTeam")
	return Game{
		ID:        intOrZero(getInt(g, "id")),
		Season:    season,
		Date:      getString(g, "gameDate"),
		GameType:  intOrZero(getInt(g, "gameType")),
		HomeTeam:  getString(home, "abbrev"),
		AwayTeam:  getString(away, "abbrev"),
		HomeScore: getInt(home, "score"),
		AwayScore: getInt(away, "score"),
		GameState: getString(g, "gameState"),
		Venue:     localeDefault(g, "venue"),
	}
}

// normalizeStanding flattens one standings row into the full standings
// projection.
func normalizeStanding(rec map[string]any) Standing {
	return Standing{
		Team:           localeDefault(rec, "teamAbbrev"),
		Conference:     getString(rec, "conferenceName"),
		Division:       getString(rec, "divisionName"),
		GamesPlayed:    intOrZero(getInt(rec, "gamesPlayed")),
		Wins:           intOrZero(getInt(rec, "wins")),
		Losses:         intOrZero(getInt(rec, "losses")),
		OTLosses:       intOrZero(getInt(rec, "otLosses")),
		Points:         intOrZero(getInt(rec, "points")),
		PointsPct:      getFloat(rec, "pointPctg"),
		GoalsFor:       intOrZero(getInt(rec, "goalFor")),
		GoalsAgainst:   intOrZero(getInt(rec, "goalAgainst")),
		GoalDiff:       intOrZero(getInt(rec, "goalDifferential")),
		RegulationWins: intOrZero(getInt(rec, "regulationWins")),
		Streak:         getString(rec, "streakCode"),
	}
}

// normalizePlayerDetail flattens a player landing page.
func normalizePlayerDetail(playerID int, data map[string]any) PlayerDetail {
	draft := getMap(data, "draftDetails")
	return PlayerDetail{
		ID:            playerID,
		FirstName:     localeDefault(data, "firstName"),
		LastName:      localeDefault(data, "lastName"),
		BirthDate:     getString(data, "birthDate"),
		BirthCity:     localeDefault(data, "birthCity"),
		BirthCountry:  getString(data, "birthCountry"),
		HeightInches:  getInt(data, "heightInInches"),
		WeightPounds:  getInt(data, "weightInPounds"),
		Position:      getString(data, "position"),
		ShootsCatches: getString(data, "shootsCatches"),
		Team:          getString(data, "currentTeamAbbrev"),
		JerseyNumber:  getInt(data, "sweaterNumber"),
		DraftYear:     getInt(draft, "year"),
		DraftRound:    getInt(draft, "round"),
		DraftPick:     getInt(draft, "pickInRound"),
		CareerStats:   getMap(data, "careerTotals"),
	}
}
