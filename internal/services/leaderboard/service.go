package leaderboard

import (
	"sort"

	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/board"
)

// Score values per status. Red and white contribute nothing.
const (
	greenScore  = 1.0
	orangeScore = 0.75
)

// Entry is one leaderboard row
type Entry struct {
	Player *model.Player `json:"player"`
	Score  float64       `json:"score"`
}

// Service derives the leaderboard from the board mirror. It keeps no
// state of its own; every call recomputes from the current snapshot.
type Service struct {
	board *board.Service
}

// New creates a new leaderboard service
func New(b *board.Service) *Service {
	return &Service{board: b}
}

// Standings returns one entry per player, ordered by score descending.
// The score sums each player's status over the current games, so cells
// referencing anything no longer on the board contribute nothing.
// Players with equal scores keep their name order from the board.
func (s *Service) Standings() []Entry {
	players, games, cells := s.board.Snapshot()

	type pairKey struct {
		player model.PlayerID
		game   model.GameID
	}
	statuses := make(map[pairKey]model.Status, len(cells))
	for _, c := range cells {
		statuses[pairKey{c.PlayerID, c.GameID}] = c.Status
	}

	entries := make([]Entry, len(players))
	for i, p := range players {
		var score float64
		for _, g := range games {
			score += scoreFor(statuses[pairKey{p.ID, g.ID}])
		}
		entries[i] = Entry{Player: p, Score: score}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

func scoreFor(status model.Status) float64 {
	switch status {
	case model.StatusGreen:
		return greenScore
	case model.StatusOrange:
		return orangeScore
	default:
		return 0
	}
}
