package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mossii/statusboard/internal/dependencies/mocks"
	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/board"
	"github.com/mossii/statusboard/internal/storage"
	"github.com/mossii/statusboard/internal/storage/memory"
	"github.com/mossii/statusboard/internal/testutil"
)

// staleCellStorage appends extra cells to listings, mimicking leftovers from
// a partial remote failure that a reload then picks up.
type staleCellStorage struct {
	storage.Storage
	extra []*model.StatusCell
}

func (s *staleCellStorage) ListStatusCells(ctx context.Context) ([]*model.StatusCell, error) {
	cells, err := s.Storage.ListStatusCells(ctx)
	if err != nil {
		return nil, err
	}
	return append(cells, s.extra...), nil
}

type ServiceSuite struct {
	suite.Suite
	board   *board.Service
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.board = board.New(memory.New(clk), testutil.NopLogger())
	s.service = New(s.board)
	s.ctx = context.Background()
	s.Require().NoError(s.board.LoadAll(s.ctx))
}

// cycleTo advances a cell until it shows the wanted status
func (s *ServiceSuite) cycleTo(playerID model.PlayerID, gameID model.GameID, want model.Status) {
	for s.board.StatusOf(playerID, gameID) != want {
		_, err := s.board.CycleStatus(s.ctx, playerID, gameID)
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestEmptyBoard() {
	s.Empty(s.service.Standings())
}

func (s *ServiceSuite) TestFreshPlayersScoreZero() {
	_, _ = s.board.AddPlayer(s.ctx, "Alice")
	_, _ = s.board.AddGame(s.ctx, "Chess")

	standings := s.service.Standings()
	s.Require().Len(standings, 1)
	s.Equal(0.0, standings[0].Score)
}

func (s *ServiceSuite) TestScoringAndOrdering() {
	alice, _ := s.board.AddPlayer(s.ctx, "Alice")
	bob, _ := s.board.AddPlayer(s.ctx, "Bob")
	g1, _ := s.board.AddGame(s.ctx, "Chess")
	g2, _ := s.board.AddGame(s.ctx, "Anno")
	g3, _ := s.board.AddGame(s.ctx, "Catan")

	// Bob: three greens = 3.0
	s.cycleTo(bob.ID, g1.ID, model.StatusGreen)
	s.cycleTo(bob.ID, g2.ID, model.StatusGreen)
	s.cycleTo(bob.ID, g3.ID, model.StatusGreen)

	// Alice: three oranges = 2.25
	s.cycleTo(alice.ID, g1.ID, model.StatusOrange)
	s.cycleTo(alice.ID, g2.ID, model.StatusOrange)
	s.cycleTo(alice.ID, g3.ID, model.StatusOrange)

	standings := s.service.Standings()
	s.Require().Len(standings, 2)
	s.Equal(bob.ID, standings[0].Player.ID)
	s.Equal(3.0, standings[0].Score)
	s.Equal(alice.ID, standings[1].Player.ID)
	s.Equal(2.25, standings[1].Score)
}

func (s *ServiceSuite) TestRedAndWhiteScoreNothing() {
	alice, _ := s.board.AddPlayer(s.ctx, "Alice")
	g1, _ := s.board.AddGame(s.ctx, "Chess")
	_, _ = s.board.AddGame(s.ctx, "Anno")

	s.cycleTo(alice.ID, g1.ID, model.StatusRed)

	standings := s.service.Standings()
	s.Require().Len(standings, 1)
	s.Equal(0.0, standings[0].Score)
}

func (s *ServiceSuite) TestCellsForRemovedGamesDoNotScore() {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := &staleCellStorage{Storage: memory.New(clk)}
	b := board.New(store, testutil.NopLogger())
	service := New(b)
	s.Require().NoError(b.LoadAll(s.ctx))

	alice, err := b.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	// a green cell for a game no listing returns anymore
	store.extra = []*model.StatusCell{{
		ID:       model.StatusCellID("leftover"),
		PlayerID: alice.ID,
		GameID:   model.GameID("vanished"),
		Status:   model.StatusGreen,
	}}
	s.Require().NoError(b.LoadAll(s.ctx))

	standings := service.Standings()
	s.Require().Len(standings, 1)
	s.Equal(alice.ID, standings[0].Player.ID)
	s.Equal(0.0, standings[0].Score)
}

func (s *ServiceSuite) TestTiesKeepNameOrder() {
	// name ordering comes from storage: Anna before Zoe
	zoe, _ := s.board.AddPlayer(s.ctx, "Zoe")
	anna, _ := s.board.AddPlayer(s.ctx, "Anna")
	game, _ := s.board.AddGame(s.ctx, "Chess")

	s.cycleTo(zoe.ID, game.ID, model.StatusGreen)
	s.cycleTo(anna.ID, game.ID, model.StatusGreen)

	s.Require().NoError(s.board.LoadAll(s.ctx))

	standings := s.service.Standings()
	s.Require().Len(standings, 2)
	s.Equal(anna.ID, standings[0].Player.ID)
	s.Equal(zoe.ID, standings[1].Player.ID)
}
