package cli

import (
	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show the full status board",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BoardResult

			if err := client.Get("/api/v1/board", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cell",
		Short: "Status cell commands",
	}

	cmd.AddCommand(newCellCycleCmd())

	return cmd
}

func newCellCycleCmd() *cobra.Command {
	var playerID, gameID string

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Cycle a cell one step (white, red, orange, green)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id": playerID,
				"game_id":   gameID,
			}
			var result StatusCell

			if err := client.Post("/api/v1/board/cells/cycle", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (required)")
	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("game")

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LeaderboardEntry

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
