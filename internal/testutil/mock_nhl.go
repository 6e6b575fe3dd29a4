// Package testutil provides testing utilities for the NHL scraper.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock NHL API endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockNHL is a configurable mock NHL API server for testing.
type MockNHL struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	PathCounts        map[string]int
	LastRequestHeader http.Header
}

// NewMockNHL creates a new mock NHL API server.
func NewMockNHL() *MockNHL {
	mock := &MockNHL{
		handlers:   make(map[string]func(w http.ResponseWriter, r *http.Request)),
		PathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.PathCounts[r.URL.Path]++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockNHL) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockNHL) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockNHL) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.PathCounts = make(map[string]int)
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockNHL) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockNHL) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockNHL) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPathCount returns the number of requests made to a specific path.
func (m *MockNHL) GetPathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PathCounts[path]
}

// defaultHandler answers unconfigured paths with an empty JSON object.
func (m *MockNHL) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{}`))
}

// NewJSONResponse creates a standard 200 OK JSON response.
func NewJSONResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"error": "not found"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// StandingsRow renders one standings row in the NHL API's shape.
func StandingsRow(abbrev, name, conference, division string, wins, losses, otLosses, points, goalDiff int) string {
	gamesPlayed := wins + losses + otLosses
	return fmt.Sprintf(`{
		"teamAbbrev": {"default": %q},
		"teamName": {"default": %q},
		"conferenceName": %q,
		"divisionName": %q,
		"wins": %d,
		"losses": %d,
		"otLosses": %d,
		"points": %d,
		"gamesPlayed": %d,
		"pointPctg": 0.65,
		"goalFor": 250,
		"goalAgainst": %d,
		"goalDifferential": %d,
		"regulationWins": %d,
		"streakCode": "W2"
	}`, abbrev, name, conference, division, wins, losses, otLosses, points, gamesPlayed, 250-goalDiff, goalDiff, wins-2)
}

// StandingsPayload wraps standings rows in the standings envelope.
func StandingsPayload(rows ...string) string {
	return `{"standingsDate": "2024-03-15", "standings": [` + join(rows) + `]}`
}

// SkaterRow renders one skater leaderboard row.
func SkaterRow(playerID int, first, last, team, position string, goals, assists, points int) string {
	return fmt.Sprintf(`{
		"playerId": %d,
		"firstName": {"default": %q},
		"lastName": {"default": %q},
		"teamAbbrev": %q,
		"positionCode": %q,
		"goals": %d,
		"assists": %d,
		"gamesPlayed": 70,
		"value": %d
	}`, playerID, first, last, team, position, goals, assists, points)
}

// SkaterPayload wraps skater rows in the points-leaderboard envelope.
func SkaterPayload(rows ...string) string {
	return `{"points": [` + join(rows) + `]}`
}

// GoalieRow renders one goalie leaderboard row.
func GoalieRow(playerID int, first, last, team string, wins int) string {
	return fmt.Sprintf(`{
		"playerId": %d,
		"firstName": {"default": %q},
		"lastName": {"default": %q},
		"teamAbbrev": %q,
		"gamesPlayed": 55,
		"value": %d
	}`, playerID, first, last, team, wins)
}

// GoaliePayload wraps goalie rows in the wins-leaderboard envelope.
func GoaliePayload(rows ...string) string {
	return `{"wins": [` + join(rows) + `]}`
}

// GameRow renders one schedule game entry.
func GameRow(gameID int, date, home, away string, homeScore, awayScore int) string {
	return fmt.Sprintf(`{
		"id": %d,
		"gameDate": %q,
		"gameType": 2,
		"gameState": "OFF",
		"venue": {"default": "Test Arena"},
		"homeTeam": {"abbrev": %q, "score": %d},
		"awayTeam": {"abbrev": %q, "score": %d}
	}`, gameID, date, home, homeScore, away, awayScore)
}

// SchedulePayload wraps games in a single game week.
func SchedulePayload(games ...string) string {
	return `{"gameWeek": [{"date": "2024-10-01", "games": [` + join(games) + `]}]}`
}

// PlayerLandingPayload renders a minimal player landing page.
func PlayerLandingPayload(playerID int, first, last, team string) string {
	return fmt.Sprintf(`{
		"playerId": %d,
		"firstName": {"default": %q},
		"lastName": {"default": %q},
		"birthDate": "1997-09-17",
		"birthCity": {"default": "Toronto"},
		"birthCountry": "CAN",
		"heightInInches": 73,
		"weightInPounds": 208,
		"position": "C",
		"shootsCatches": "L",
		"currentTeamAbbrev": %q,
		"sweaterNumber": 34,
		"draftDetails": {"year": 2016, "round": 1, "pickInRound": 1},
		"careerTotals": {"regularSeason": {"goals": 300}}
	}`, playerID, first, last, team)
}

// PaginatedSkaterHandler serves skater leaderboard pages driven by the
// start query parameter. pages[i] is the batch returned for offset
// i*pageSize; offsets past the last page return an empty list.
func PaginatedSkaterHandler(pageSize int, pages [][]string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		idx := start / pageSize

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if idx < 0 || idx >= len(pages) {
			w.Write([]byte(SkaterPayload()))
			return
		}
		w.Write([]byte(SkaterPayload(pages[idx]...)))
	}
}

func join(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
