package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGames(v)
	case StatusCell:
		o.printCell(v)
	case BoardResult:
		o.printBoard(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case LockState:
		o.printLockState(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Game response type
type Game struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// StatusCell response type
type StatusCell struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	GameID   string `json:"game_id"`
	Status   string `json:"status"`
}

// LockState response type
type LockState struct {
	Locked bool `json:"locked"`
}

// BoardResult response type
type BoardResult struct {
	Players []Player     `json:"players"`
	Games   []Game       `json:"games"`
	Cells   []StatusCell `json:"cells"`
	Lock    LockState    `json:"lock"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Player Player  `json:"player"`
	Score  float64 `json:"score"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
}

func (o *Output) printPlayers(players []Player) {
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  - %s (%s)\n", p.Name, p.ID)
	}
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s (%s)\n", g.Name, g.ID)
}

func (o *Output) printGames(games []Game) {
	fmt.Printf("Games (%d):\n", len(games))
	for _, g := range games {
		fmt.Printf("  - %s (%s)\n", g.Name, g.ID)
	}
}

func (o *Output) printCell(c StatusCell) {
	fmt.Printf("Cell: player=%s game=%s status=%s\n", c.PlayerID, c.GameID, c.Status)
}

// statusLetter maps a status to its single-letter grid marker
func statusLetter(status string) string {
	switch status {
	case "red":
		return "R"
	case "orange":
		return "O"
	case "green":
		return "G"
	default:
		return "."
	}
}

func (o *Output) printBoard(b BoardResult) {
	lockStr := "unlocked"
	if b.Lock.Locked {
		lockStr = "locked"
	}
	fmt.Printf("Board (%s): %d players, %d games\n", lockStr, len(b.Players), len(b.Games))

	if len(b.Players) == 0 || len(b.Games) == 0 {
		return
	}

	// Index cells by pair; pairs without a cell render as white
	statuses := make(map[string]string, len(b.Cells))
	for _, c := range b.Cells {
		statuses[c.PlayerID+"/"+c.GameID] = c.Status
	}

	nameWidth := 0
	for _, p := range b.Players {
		if len(p.Name) > nameWidth {
			nameWidth = len(p.Name)
		}
	}

	fmt.Println()
	for i, g := range b.Games {
		fmt.Printf("  %*s  %s\n", nameWidth, "", indent(i)+g.Name)
	}
	for _, p := range b.Players {
		fmt.Printf("  %-*s ", nameWidth, p.Name)
		for _, g := range b.Games {
			fmt.Printf(" %s", statusLetter(statuses[p.ID+"/"+g.ID]))
		}
		fmt.Println()
	}
	fmt.Println("\n  . = white  R = red  O = orange  G = green")
}

func indent(n int) string {
	s := ""
	for i := 0; i < n*2; i++ {
		s += " "
	}
	return s
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	fmt.Println("Leaderboard:")
	for i, e := range entries {
		fmt.Printf("  %d. %s - %.2f\n", i+1, e.Player.Name, e.Score)
	}
}

func (o *Output) printLockState(s LockState) {
	if s.Locked {
		fmt.Println("Board is locked")
	} else {
		fmt.Println("Board is unlocked")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
