package cli

import (
	"github.com/spf13/cobra"
)

func newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Edit lock commands",
	}

	cmd.AddCommand(newLockStatusCmd())
	cmd.AddCommand(newLockUnlockCmd())
	cmd.AddCommand(newLockToggleCmd())

	return cmd
}

func newLockStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the lock state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LockState

			if err := client.Get("/api/v1/lock", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLockUnlockCmd() *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock the board with the shared passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"passphrase": passphrase}
			var result LockState

			if err := client.Post("/api/v1/lock/unlock", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Shared passphrase (required)")
	_ = cmd.MarkFlagRequired("passphrase")

	return cmd
}

func newLockToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Lock an open board",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LockState

			if err := client.Post("/api/v1/lock/toggle", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
