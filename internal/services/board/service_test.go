package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mossii/statusboard/internal/dependencies/mocks"
	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/storage"
	"github.com/mossii/statusboard/internal/storage/memory"
	"github.com/mossii/statusboard/internal/testutil"
)

var errStorageDown = errors.New("storage down")

// flakyStorage wraps a real storage and lets tests fail selected operations
type flakyStorage struct {
	storage.Storage

	failList    bool
	failInserts bool
	failUpsert  bool
	failDelete  bool
}

func (f *flakyStorage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	if f.failList {
		return nil, errStorageDown
	}
	return f.Storage.ListPlayers(ctx)
}

func (f *flakyStorage) InsertStatusCells(ctx context.Context, cells []model.StatusCell) ([]*model.StatusCell, error) {
	if f.failInserts {
		return nil, errStorageDown
	}
	return f.Storage.InsertStatusCells(ctx, cells)
}

func (f *flakyStorage) UpsertStatusCell(ctx context.Context, cell model.StatusCell) (*model.StatusCell, error) {
	if f.failUpsert {
		return nil, errStorageDown
	}
	return f.Storage.UpsertStatusCell(ctx, cell)
}

func (f *flakyStorage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if f.failDelete {
		return errStorageDown
	}
	return f.Storage.DeletePlayer(ctx, id)
}

type ServiceSuite struct {
	suite.Suite
	storage *flakyStorage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = &flakyStorage{Storage: memory.New(clk)}
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
	s.Require().NoError(s.service.LoadAll(s.ctx))
}

// LoadAll tests

func (s *ServiceSuite) TestLoadAllEmptyStore() {
	s.True(s.service.Loaded())
	s.Empty(s.service.Players())
	s.Empty(s.service.Games())
	s.Empty(s.service.Cells())
}

func (s *ServiceSuite) TestLoadAllIsIdempotent() {
	_, _ = s.service.AddGame(s.ctx, "Chess")
	_, _ = s.service.AddPlayer(s.ctx, "Alice")

	s.Require().NoError(s.service.LoadAll(s.ctx))
	first, firstGames, firstCells := s.service.Snapshot()

	s.Require().NoError(s.service.LoadAll(s.ctx))
	second, secondGames, secondCells := s.service.Snapshot()

	s.Equal(first, second)
	s.Equal(firstGames, secondGames)
	s.Equal(firstCells, secondCells)
}

func (s *ServiceSuite) TestLoadAllFailureLeavesEmptyLoadedState() {
	_, _ = s.service.AddPlayer(s.ctx, "Alice")

	s.storage.failList = true
	err := s.service.LoadAll(s.ctx)
	s.ErrorIs(err, errStorageDown)

	s.True(s.service.Loaded())
	s.Empty(s.service.Players())
	s.Empty(s.service.Games())
	s.Empty(s.service.Cells())
}

// AddPlayer tests

func (s *ServiceSuite) TestAddPlayerRejectsEmptyName() {
	_, err := s.service.AddPlayer(s.ctx, "   ")
	s.ErrorIs(err, model.ErrNameRequired)
	s.Empty(s.service.Players())
}

func (s *ServiceSuite) TestAddPlayerTrimsName() {
	player, err := s.service.AddPlayer(s.ctx, "  Alice  ")
	s.Require().NoError(err)
	s.Equal("Alice", player.Name)
}

func (s *ServiceSuite) TestAddPlayerSeedsWhiteCellPerGame() {
	g1, _ := s.service.AddGame(s.ctx, "Chess")
	g2, _ := s.service.AddGame(s.ctx, "Anno")

	player, err := s.service.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	cells := s.service.Cells()
	s.Require().Len(cells, 2)
	for _, c := range cells {
		s.Equal(player.ID, c.PlayerID)
		s.Equal(model.StatusWhite, c.Status)
	}
	s.Equal(model.StatusWhite, s.service.StatusOf(player.ID, g1.ID))
	s.Equal(model.StatusWhite, s.service.StatusOf(player.ID, g2.ID))
}

func (s *ServiceSuite) TestAddPlayerWithNoGamesSkipsCellInsert() {
	_, err := s.service.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Empty(s.service.Cells())
}

func (s *ServiceSuite) TestAddPlayerSurvivesFailedCellInsert() {
	_, _ = s.service.AddGame(s.ctx, "Chess")

	s.storage.failInserts = true
	player, err := s.service.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err, "the player insert succeeded; the cell gap is accepted")
	s.Require().NotNil(player)

	s.Len(s.service.Players(), 1)
	s.Empty(s.service.Cells())
}

// AddGame tests

func (s *ServiceSuite) TestAddGameSeedsWhiteCellPerPlayer() {
	p1, _ := s.service.AddPlayer(s.ctx, "Alice")

	game, err := s.service.AddGame(s.ctx, "Chess")
	s.Require().NoError(err)

	cells := s.service.Cells()
	s.Require().Len(cells, 1)
	s.Equal(p1.ID, cells[0].PlayerID)
	s.Equal(game.ID, cells[0].GameID)
	s.Equal(model.StatusWhite, cells[0].Status)
}

func (s *ServiceSuite) TestAddGameRejectsEmptyName() {
	_, err := s.service.AddGame(s.ctx, "")
	s.ErrorIs(err, model.ErrNameRequired)
}

// Remove tests

func (s *ServiceSuite) TestRemovePlayerDropsAllItsCells() {
	player, _ := s.service.AddPlayer(s.ctx, "Alice")
	other, _ := s.service.AddPlayer(s.ctx, "Bob")
	_, _ = s.service.AddGame(s.ctx, "Chess")
	_, _ = s.service.AddGame(s.ctx, "Anno")
	_, _ = s.service.AddGame(s.ctx, "Catan")

	err := s.service.RemovePlayer(s.ctx, player.ID)
	s.Require().NoError(err)

	s.Len(s.service.Players(), 1)
	for _, c := range s.service.Cells() {
		s.Equal(other.ID, c.PlayerID)
	}
	s.Len(s.service.Cells(), 3)
}

func (s *ServiceSuite) TestRemovePlayerFailureLeavesLocalStateUntouched() {
	player, _ := s.service.AddPlayer(s.ctx, "Alice")
	_, _ = s.service.AddGame(s.ctx, "Chess")

	s.storage.failDelete = true
	err := s.service.RemovePlayer(s.ctx, player.ID)
	s.ErrorIs(err, errStorageDown)

	s.Len(s.service.Players(), 1)
	s.Len(s.service.Cells(), 1)
}

func (s *ServiceSuite) TestRemoveGameDropsAllItsCells() {
	_, _ = s.service.AddPlayer(s.ctx, "Alice")
	_, _ = s.service.AddPlayer(s.ctx, "Bob")
	game, _ := s.service.AddGame(s.ctx, "Chess")
	kept, _ := s.service.AddGame(s.ctx, "Anno")

	err := s.service.RemoveGame(s.ctx, game.ID)
	s.Require().NoError(err)

	s.Len(s.service.Games(), 1)
	for _, c := range s.service.Cells() {
		s.Equal(kept.ID, c.GameID)
	}
	s.Len(s.service.Cells(), 2)
}

// Cycle tests

func (s *ServiceSuite) TestStatusOfDefaultsToWhite() {
	s.Equal(model.StatusWhite, s.service.StatusOf("nobody", "nothing"))
}

func (s *ServiceSuite) TestCycleStatusAdvancesThroughFullCycle() {
	player, _ := s.service.AddPlayer(s.ctx, "Alice")
	game, _ := s.service.AddGame(s.ctx, "Chess")

	want := []model.Status{model.StatusRed, model.StatusOrange, model.StatusGreen, model.StatusWhite}
	for _, expected := range want {
		cell, err := s.service.CycleStatus(s.ctx, player.ID, game.ID)
		s.Require().NoError(err)
		s.Equal(expected, cell.Status)
		s.Equal(expected, s.service.StatusOf(player.ID, game.ID))
	}
}

func (s *ServiceSuite) TestCycleStatusKeepsOneCellPerPair() {
	player, _ := s.service.AddPlayer(s.ctx, "Alice")
	game, _ := s.service.AddGame(s.ctx, "Chess")

	_, _ = s.service.CycleStatus(s.ctx, player.ID, game.ID)
	_, _ = s.service.CycleStatus(s.ctx, player.ID, game.ID)

	count := 0
	for _, c := range s.service.Cells() {
		if c.PlayerID == player.ID && c.GameID == game.ID {
			count++
		}
	}
	s.Equal(1, count)
}

func (s *ServiceSuite) TestCycleStatusFailureLeavesLocalStateUntouched() {
	player, _ := s.service.AddPlayer(s.ctx, "Alice")
	game, _ := s.service.AddGame(s.ctx, "Chess")
	_, _ = s.service.CycleStatus(s.ctx, player.ID, game.ID) // red

	s.storage.failUpsert = true
	_, err := s.service.CycleStatus(s.ctx, player.ID, game.ID)
	s.ErrorIs(err, errStorageDown)

	s.Equal(model.StatusRed, s.service.StatusOf(player.ID, game.ID))
}

func (s *ServiceSuite) TestCycleStatusUnknownPlayer() {
	_, _ = s.service.AddGame(s.ctx, "Chess")
	games := s.service.Games()

	_, err := s.service.CycleStatus(s.ctx, "missing", games[0].ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
