package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/halitebot/internal/dependencies/random"
	"github.com/mcoot/halitebot/internal/model"
	"github.com/mcoot/halitebot/internal/services/session"
	"github.com/mcoot/halitebot/internal/services/simulator"
	"github.com/mcoot/halitebot/internal/storage/memory"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: a served game plays a simulated match turn by turn
func (s *IntegrationSuite) TestServedGameAgainstSimulator() {
	world, err := simulator.Generate(12, 12, 2, random.NewSeeded(3))
	s.Require().NoError(err)

	s.app.MockRandom.QueueString("GAME01")
	seed := uint64(11)
	game, err := s.app.SessionController.CreateGame(s.ctx, session.CreateParams{
		PlayerTag:  1,
		Production: world.Board().ProductionGrid(),
		Strategy:   model.StrategyFrontier,
		Seed:       &seed,
	})
	s.Require().NoError(err)
	s.Equal(model.GameID("GAME01"), game.ID)

	start := world.Stats(1)
	for turn := 1; turn <= 10; turn++ {
		owners, strengths := world.Grids()
		res, err := s.app.SessionController.PlayTurn(s.ctx, game.ID, owners, strengths)
		s.Require().NoError(err)
		s.Equal(turn, res.Turn)

		for _, o := range res.Orders {
			s.Equal(1, world.Owner(o.X, o.Y), "order from (%d,%d)", o.X, o.Y)
		}
		s.Require().NoError(world.Step(map[int][]model.Order{1: res.Orders}))
	}

	s.Greater(world.Stats(1).Territory, start.Territory)

	s.Require().NoError(s.app.SessionController.EndGame(s.ctx, game.ID))
	_, err = s.app.SessionController.GetGame(s.ctx, game.ID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Test: the runner wired by the factory plays a batch
func (s *IntegrationSuite) TestRunnerPlaysBatch() {
	results, err := s.app.Runner.RunMany(s.ctx, simulator.MatchConfig{
		Width:      8,
		Height:     8,
		Strategies: []string{model.StrategyFrontier, model.StrategyRandom},
		MaxTurns:   5,
		Seed:       1,
	}, 2)
	s.Require().NoError(err)
	s.Len(results, 2)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(Config{StorageType: "sqlite"})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, app.Storage)
	assert.NotNil(t, app.SessionController)
	assert.NotNil(t, app.Runner)
}
