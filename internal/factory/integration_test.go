package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/lock"
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
	s.Require().NoError(s.app.BoardService.LoadAll(s.ctx))
}

func (s *IntegrationSuite) TestFullBoardLifecycle() {
	// Unlock the board first
	_, err := s.app.LockService.Unlock(lock.DefaultConfig().Passphrase)
	s.Require().NoError(err)

	alice, err := s.app.BoardService.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	bob, err := s.app.BoardService.AddPlayer(s.ctx, "Bob")
	s.Require().NoError(err)

	chess, err := s.app.BoardService.AddGame(s.ctx, "Chess")
	s.Require().NoError(err)

	// New game seeds white cells for both players
	s.Len(s.app.BoardService.Cells(), 2)

	// Alice to green, Bob to orange
	for i := 0; i < 3; i++ {
		_, err = s.app.BoardService.CycleStatus(s.ctx, alice.ID, chess.ID)
		s.Require().NoError(err)
	}
	for i := 0; i < 2; i++ {
		_, err = s.app.BoardService.CycleStatus(s.ctx, bob.ID, chess.ID)
		s.Require().NoError(err)
	}
	s.Equal(model.StatusGreen, s.app.BoardService.StatusOf(alice.ID, chess.ID))
	s.Equal(model.StatusOrange, s.app.BoardService.StatusOf(bob.ID, chess.ID))

	standings := s.app.LeaderboardService.Standings()
	s.Require().Len(standings, 2)
	s.Equal(alice.ID, standings[0].Player.ID)
	s.Equal(1.0, standings[0].Score)
	s.Equal(bob.ID, standings[1].Player.ID)
	s.Equal(0.75, standings[1].Score)

	// Removing the game empties the grid
	s.Require().NoError(s.app.BoardService.RemoveGame(s.ctx, chess.ID))
	s.Empty(s.app.BoardService.Cells())

	// Lock the board again
	state, err := s.app.LockService.Toggle()
	s.Require().NoError(err)
	s.True(state.Locked)
}

func (s *IntegrationSuite) TestSurvivesReload() {
	alice, err := s.app.BoardService.AddPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	chess, err := s.app.BoardService.AddGame(s.ctx, "Chess")
	s.Require().NoError(err)
	_, err = s.app.BoardService.CycleStatus(s.ctx, alice.ID, chess.ID)
	s.Require().NoError(err)

	// A fresh load from storage sees the same board
	s.Require().NoError(s.app.BoardService.LoadAll(s.ctx))
	s.Equal(model.StatusRed, s.app.BoardService.StatusOf(alice.ID, chess.ID))
	s.Len(s.app.BoardService.Players(), 1)
	s.Len(s.app.BoardService.Games(), 1)
}
