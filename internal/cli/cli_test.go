package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/halitebot/internal/api"
	"github.com/mcoot/halitebot/internal/factory"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/replay"
	"github.com/mcoot/halitebot/internal/testutil"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func startServer(t *testing.T) (*httptest.Server, *factory.App) {
	t.Helper()
	app, err := factory.New(factory.Config{Logger: testutil.NopLogger()})
	require.NoError(t, err)
	ts := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		SessionController: app.SessionController,
	}))
	t.Cleanup(ts.Close)
	return ts, app
}

func TestPlay(t *testing.T) {
	frame := "1 0 2 1 2 2 1 0 10 20 30 40 50 60"
	input := "1\n3 2\n1 2 3 4 5 6\n" + frame + "\n" + frame + "\n" + frame + "\n"

	stdout, stderr, err := run(t, input, "play", "--seed", "3", "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "halitebot", lines[0])
	assert.Empty(t, stderr)
}

func TestPlay_MalformedInput(t *testing.T) {
	_, stderr, err := run(t, "1\n3 2\n1 2 3\n", "play")
	require.Error(t, err)
	assert.Contains(t, stderr, "game aborted")
}

func TestPlay_BadOverrideRule(t *testing.T) {
	_, _, err := run(t, "", "play", "--override-rule", "sideways: true")
	assert.Error(t, err)
}

func TestInvalidStrategy(t *testing.T) {
	_, _, err := run(t, "", "version", "-s", "nope")
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "halitebot dev")
	assert.Contains(t, stdout, model.StrategyFrontier)

	stdout, _, err = run(t, "", "version", "-o", "json")
	require.NoError(t, err)
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, model.ValidStrategies(), info.Strategies)
}

func TestSimulateThenInspect(t *testing.T) {
	out := filepath.Join(t.TempDir(), "batch.parquet")

	stdout, _, err := run(t, "", "simulate",
		"--width", "10", "--height", "10", "--games", "3", "--max-turns", "8",
		"--seed", "11", "--out", out, "-o", "json", "--log-level", "error")
	require.NoError(t, err)

	var simulated SimulationSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &simulated))
	assert.Equal(t, 3, simulated.Games)
	assert.Equal(t, out, simulated.Output)
	require.Len(t, simulated.Players, 2)
	assert.Equal(t, model.StrategyFrontier, simulated.Players[0].Strategy)
	assert.Equal(t, model.StrategyGreedy, simulated.Players[1].Strategy)

	stdout, _, err = run(t, "", "inspect", out, "-o", "json")
	require.NoError(t, err)

	var inspected SimulationSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &inspected))
	assert.Equal(t, simulated.Games, inspected.Games)
	assert.Equal(t, simulated.Players, inspected.Players)
	assert.InDelta(t, simulated.AvgTurns, inspected.AvgTurns, 1e-9)
}

func TestSimulate_Validation(t *testing.T) {
	_, _, err := run(t, "", "simulate", "--strategies", "frontier")
	assert.Error(t, err)

	_, _, err = run(t, "", "simulate", "--strategies", "frontier,nope")
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)

	_, _, err = run(t, "", "simulate", "--games", "0")
	assert.Error(t, err)
}

func TestInspect_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "inspect", filepath.Join(t.TempDir(), "missing.parquet"))
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	ts, _ := startServer(t)

	stdout, _, err := run(t, "", "health", "--server", ts.URL, "-o", "json")
	require.NoError(t, err)

	var result HealthResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "ok", result.Status)
}

func TestRemote(t *testing.T) {
	ts, app := startServer(t)

	stdout, _, err := run(t, "", "remote", "--server", ts.URL,
		"--width", "10", "--height", "10", "--max-turns", "6", "--seed", "7",
		"-o", "json", "--log-level", "error")
	require.NoError(t, err)

	var result RemoteResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.NotEmpty(t, result.GameID)
	assert.Equal(t, model.StrategyFrontier, result.Strategy)
	assert.Equal(t, 6, result.Turns)
	assert.Equal(t, 100, result.Cells)
	assert.GreaterOrEqual(t, result.Territory, 1)

	ids, err := app.SessionController.ListGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemote_ServerDown(t *testing.T) {
	ts, _ := startServer(t)
	url := ts.URL
	ts.Close()

	_, _, err := run(t, "", "remote", "--server", url, "--log-level", "error")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	rows := []replay.TurnRow{
		{MatchID: "a", Turn: 1, Player: 1, Strategy: "frontier", Territory: 2, Winner: 1},
		{MatchID: "a", Turn: 1, Player: 2, Strategy: "greedy", Territory: 2, Winner: 1},
		{MatchID: "a", Turn: 2, Player: 1, Strategy: "frontier", Territory: 6, Winner: 1},
		{MatchID: "b", Turn: 1, Player: 1, Strategy: "frontier", Territory: 3, Winner: 0},
		{MatchID: "b", Turn: 1, Player: 2, Strategy: "greedy", Territory: 3, Winner: 0},
	}

	s := summarize(rows)
	assert.Equal(t, 2, s.Games)
	assert.Equal(t, 1, s.Ties)
	assert.InDelta(t, 1.5, s.AvgTurns, 1e-9)
	require.Len(t, s.Players, 2)
	assert.Equal(t, PlayerSummary{Player: 1, Strategy: "frontier", Wins: 1, AvgTerritory: 4.5}, s.Players[0])
	assert.Equal(t, PlayerSummary{Player: 2, Strategy: "greedy", Wins: 0, AvgTerritory: 2.5}, s.Players[1])

	assert.Equal(t, SimulationSummary{}, summarize(nil))
}

func TestSeedZeroIsReproducible(t *testing.T) {
	_, _, err := run(t, "", "version", "--seed", "0")
	require.NoError(t, err)
	require.True(t, cfg.SeedSet)
	require.NotNil(t, cfg.SeedPtr())
	assert.Equal(t, uint64(0), *cfg.SeedPtr())

	a, b := cfg.Random(), cfg.Random()
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Intn(1<<30), b.Intn(1<<30))
	}
}

func TestSeedUnsetPicksRandom(t *testing.T) {
	t.Setenv("HALITEBOT_SEED", "")
	_, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.False(t, cfg.SeedSet)
	assert.Nil(t, cfg.SeedPtr())
}

func TestSeedFromEnv(t *testing.T) {
	t.Setenv("HALITEBOT_SEED", "0")
	c := DefaultConfig()
	assert.True(t, c.SeedSet)
	assert.Equal(t, uint64(0), c.Seed)

	t.Setenv("HALITEBOT_SEED", "x")
	assert.False(t, DefaultConfig().SeedSet)
}
