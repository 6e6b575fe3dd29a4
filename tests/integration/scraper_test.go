// Package integration exercises the full pipeline: mock NHL API ->
// scraper -> SQLite store.
package integration

import (
	"context"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pucklab/nhl-scraper/internal/testutil"
	"github.com/pucklab/nhl-scraper/pkg/nhl"
	"github.com/pucklab/nhl-scraper/pkg/storage"
)

const season = "20242025"

func setupMock(t *testing.T) *testutil.MockNHL {
	t.Helper()
	mock := testutil.NewMockNHL()
	t.Cleanup(mock.Close)

	mock.SetResponse("/standings/now", testutil.NewJSONResponse(testutil.StandingsPayload(
		testutil.StandingsRow("BOS", "Boston Bruins", "Eastern", "Atlantic", 40, 15, 5, 85, 50),
		testutil.StandingsRow("TOR", "Toronto Maple Leafs", "Eastern", "Atlantic", 38, 18, 4, 80, 30),
		testutil.StandingsRow("VGK", "Vegas Golden Knights", "Western", "Pacific", 41, 19, 5, 87, 25),
	)))
	mock.SetResponse("/skater-stats-leaders/"+season+"/2", testutil.NewJSONResponse(testutil.SkaterPayload(
		testutil.SkaterRow(8478402, "Connor", "McDavid", "EDM", "C", 40, 90, 130),
		testutil.SkaterRow(8479318, "Auston", "Matthews", "TOR", "C", 60, 40, 100),
	)))
	mock.SetResponse("/goalie-stats-leaders/"+season+"/2", testutil.NewJSONResponse(testutil.GoaliePayload(
		testutil.GoalieRow(8475883, "Frederik", "Andersen", "CAR", 35),
	)))
	mock.SetResponse("/schedule/2024-10-01", testutil.NewJSONResponse(testutil.SchedulePayload(
		testutil.GameRow(2024020001, "2024-10-04", "BOS", "MTL", 3, 2),
		testutil.GameRow(2024020002, "2024-10-04", "TOR", "OTT", 1, 4),
	)))

	return mock
}

func TestFullScrapePipeline(t *testing.T) {
	mock := setupMock(t)
	ctx := context.Background()

	scraper, err := nhl.NewScraper(nhl.Options{
		BaseURL:           mock.URL(),
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	defer scraper.Close()

	store, err := storage.Open(filepath.Join(t.TempDir(), "nhl.db"))
	require.NoError(t, err)
	defer store.Close()

	teams, err := scraper.ScrapeTeams(ctx)
	require.NoError(t, err)
	teamsWritten, err := store.UpsertTeams(ctx, teams)
	require.NoError(t, err)
	assert.Equal(t, 3, teamsWritten)

	players, err := scraper.ScrapePlayers(ctx, season)
	require.NoError(t, err)
	playersWritten, err := store.UpsertPlayers(ctx, players)
	require.NoError(t, err)
	assert.Equal(t, 3, playersWritten)

	games, err := scraper.ScrapeGames(ctx, season)
	require.NoError(t, err)
	gamesWritten, err := store.UpsertGames(ctx, games)
	require.NoError(t, err)
	assert.Equal(t, 2, gamesWritten)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.Stats{Teams: 3, Players: 3, Games: 2}, stats)
}

func TestRepeatedScrapeRunsConverge(t *testing.T) {
	mock := setupMock(t)
	ctx := context.Background()

	scraper, err := nhl.NewScraper(nhl.Options{
		BaseURL:           mock.URL(),
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	defer scraper.Close()

	store, err := storage.Open(storage.MemoryPath)
	require.NoError(t, err)
	defer store.Close()

	for run := 0; run < 2; run++ {
		teams, err := scraper.ScrapeTeams(ctx)
		require.NoError(t, err)
		_, err = store.UpsertTeams(ctx, teams)
		require.NoError(t, err)

		players, err := scraper.ScrapePlayers(ctx, season)
		require.NoError(t, err)
		_, err = store.UpsertPlayers(ctx, players)
		require.NoError(t, err)
	}

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Teams, "teams should not duplicate across runs")
	assert.Equal(t, 3, stats.Players, "players should not duplicate across runs")
}

func TestScrapeSurvivesTransientServerErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("exercises real retry backoff")
	}

	mock := setupMock(t)

	// first standings request fails, the retry succeeds
	var calls int32
	mock.SetHandler("/standings/now", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "internal server error"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(testutil.StandingsPayload(
			testutil.StandingsRow("BOS", "Boston Bruins", "Eastern", "Atlantic", 40, 15, 5, 85, 50),
		)))
	})

	scraper, err := nhl.NewScraper(nhl.Options{
		BaseURL:           mock.URL(),
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	defer scraper.Close()

	teams, err := scraper.ScrapeTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "BOS", teams[0].ID)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}
