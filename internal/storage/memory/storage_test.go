package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mossii/statusboard/internal/dependencies/mocks"
	"github.com/mossii/statusboard/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = New(s.clock)
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestInsertPlayerGeneratesID() {
	player, err := s.storage.InsertPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.NotEmpty(player.ID)
	s.Equal("Alice", player.Name)
}

func (s *StorageSuite) TestListPlayersOrderedByName() {
	_, _ = s.storage.InsertPlayer(s.ctx, "Clara")
	_, _ = s.storage.InsertPlayer(s.ctx, "Alice")
	_, _ = s.storage.InsertPlayer(s.ctx, "Bob")

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Alice", players[0].Name)
	s.Equal("Bob", players[1].Name)
	s.Equal("Clara", players[2].Name)
}

func (s *StorageSuite) TestDeletePlayerNotFound() {
	err := s.storage.DeletePlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayerCascadesCells() {
	player, _ := s.storage.InsertPlayer(s.ctx, "Alice")
	game, _ := s.storage.InsertGame(s.ctx, "Chess")
	_, err := s.storage.UpsertStatusCell(s.ctx, model.StatusCell{
		PlayerID: player.ID,
		GameID:   game.ID,
		Status:   model.StatusGreen,
	})
	s.Require().NoError(err)

	err = s.storage.DeletePlayer(s.ctx, player.ID)
	s.Require().NoError(err)

	cells, err := s.storage.ListStatusCells(s.ctx)
	s.Require().NoError(err)
	s.Empty(cells)
}

// Game tests

func (s *StorageSuite) TestInsertGameStampsCreatedAt() {
	game, err := s.storage.InsertGame(s.ctx, "Chess")
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime, game.CreatedAt)
}

func (s *StorageSuite) TestListGamesOrderedByCreation() {
	_, _ = s.storage.InsertGame(s.ctx, "Zelda")
	s.clock.Advance(time.Minute)
	_, _ = s.storage.InsertGame(s.ctx, "Anno")

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("Zelda", games[0].Name)
	s.Equal("Anno", games[1].Name)
}

func (s *StorageSuite) TestDeleteGameCascadesCells() {
	player, _ := s.storage.InsertPlayer(s.ctx, "Alice")
	game, _ := s.storage.InsertGame(s.ctx, "Chess")
	other, _ := s.storage.InsertGame(s.ctx, "Anno")
	_, _ = s.storage.UpsertStatusCell(s.ctx, model.StatusCell{PlayerID: player.ID, GameID: game.ID, Status: model.StatusRed})
	_, _ = s.storage.UpsertStatusCell(s.ctx, model.StatusCell{PlayerID: player.ID, GameID: other.ID, Status: model.StatusGreen})

	err := s.storage.DeleteGame(s.ctx, game.ID)
	s.Require().NoError(err)

	cells, _ := s.storage.ListStatusCells(s.ctx)
	s.Require().Len(cells, 1)
	s.Equal(other.ID, cells[0].GameID)
}

func (s *StorageSuite) TestDeleteGameNotFound() {
	err := s.storage.DeleteGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Status cell tests

func (s *StorageSuite) TestInsertStatusCellsBulk() {
	player, _ := s.storage.InsertPlayer(s.ctx, "Alice")
	g1, _ := s.storage.InsertGame(s.ctx, "Chess")
	g2, _ := s.storage.InsertGame(s.ctx, "Anno")

	created, err := s.storage.InsertStatusCells(s.ctx, []model.StatusCell{
		{PlayerID: player.ID, GameID: g1.ID, Status: model.StatusWhite},
		{PlayerID: player.ID, GameID: g2.ID, Status: model.StatusWhite},
	})
	s.Require().NoError(err)
	s.Require().Len(created, 2)
	s.NotEmpty(created[0].ID)
	s.NotEqual(created[0].ID, created[1].ID)
}

func (s *StorageSuite) TestUpsertStatusCellKeepsOneRowPerPair() {
	player, _ := s.storage.InsertPlayer(s.ctx, "Alice")
	game, _ := s.storage.InsertGame(s.ctx, "Chess")

	first, err := s.storage.UpsertStatusCell(s.ctx, model.StatusCell{PlayerID: player.ID, GameID: game.ID, Status: model.StatusRed})
	s.Require().NoError(err)

	second, err := s.storage.UpsertStatusCell(s.ctx, model.StatusCell{PlayerID: player.ID, GameID: game.ID, Status: model.StatusOrange})
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID, "upsert should update in place")
	s.Equal(model.StatusOrange, second.Status)

	cells, _ := s.storage.ListStatusCells(s.ctx)
	s.Len(cells, 1)
}

func (s *StorageSuite) TestUpsertStatusCellUnknownPlayer() {
	game, _ := s.storage.InsertGame(s.ctx, "Chess")
	_, err := s.storage.UpsertStatusCell(s.ctx, model.StatusCell{PlayerID: "missing", GameID: game.ID, Status: model.StatusRed})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpsertStatusCellUnknownGame() {
	player, _ := s.storage.InsertPlayer(s.ctx, "Alice")
	_, err := s.storage.UpsertStatusCell(s.ctx, model.StatusCell{PlayerID: player.ID, GameID: "missing", Status: model.StatusRed})
	s.ErrorIs(err, model.ErrGameNotFound)
}
