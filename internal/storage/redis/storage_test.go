package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/halitebot/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func game(id model.GameID) *model.Game {
	return &model.Game{
		ID:         id,
		PlayerTag:  2,
		Width:      2,
		Height:     2,
		Production: [][]int{{1, 2}, {3, 4}},
		Strategy:   model.StrategyGoodGame,
		Seed:       42,
		Turn:       3,
		CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndGetGame() {
	g := game("game-1")
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(g.ID, retrieved.ID)
	s.Equal(g.Production, retrieved.Production)
	s.Equal(g.Strategy, retrieved.Strategy)
	s.Equal(g.Seed, retrieved.Seed)
	s.Equal(g.Turn, retrieved.Turn)
	s.True(g.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameTTL() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, game("game-1")))

	ttl := s.mini.TTL(gameKey("game-1"))
	s.Equal(time.Hour, ttl)

	s.mini.FastForward(2 * time.Hour)
	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSaveRefreshesTTL() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, game("game-1")))
	s.mini.FastForward(45 * time.Minute)
	s.Require().NoError(s.storage.SaveGame(s.ctx, game("game-1")))
	s.mini.FastForward(45 * time.Minute)

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.NoError(err)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, game("game-1")))
	s.Require().NoError(s.storage.DeleteGame(s.ctx, "game-1"))

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	isMember, err := s.mini.SIsMember(gamesIndexKey(), "game-1")
	s.Require().NoError(err)
	s.False(isMember)
}

func (s *StorageSuite) TestListGamesPrunesExpired() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, game("old")))
	s.mini.FastForward(30 * time.Minute)
	s.Require().NoError(s.storage.SaveGame(s.ctx, game("new")))
	s.mini.FastForward(45 * time.Minute)

	ids, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"new"}, ids)

	members, err := s.mini.Members(gamesIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"new"}, members)
}

func (s *StorageSuite) TestListGamesEmpty() {
	ids, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *StorageSuite) TestKeys() {
	s.Equal("halitebot:game:abc", gameKey("abc"))
	s.Equal("halitebot:idx:games", gamesIndexKey())
}
