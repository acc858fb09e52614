package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/liamgriffiths/visits/internal/visit"
)

func newAddCmd() *cobra.Command {
	var username, enter, exit string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a visit to your log",
		Long: `Add a visit to your log.

Date format: YYYY-MM-DD. Both the entry and exit day count.

Examples:
  visits add -u alice --enter 2018-01-01 --exit 2018-01-10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, username, enter, exit)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "whose log to add to")
	cmd.Flags().StringVarP(&enter, "enter", "i", "", "when you came (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&exit, "exit", "o", "", "when you left (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("enter")
	_ = cmd.MarkFlagRequired("exit")

	return cmd
}

func runAdd(cmd *cobra.Command, username, enter, exit string) error {
	enterAt, err := visit.ParseDate(enter)
	if err != nil {
		return fmt.Errorf("--enter: %w", err)
	}
	exitAt, err := visit.ParseDate(exit)
	if err != nil {
		return fmt.Errorf("--exit: %w", err)
	}
	if _, err := visit.New(0, enterAt, exitAt); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, closeStores, err := openSession(cmd, cfg, username)
	if err != nil {
		return err
	}
	defer closeStores()

	v, err := s.AddVisit(cmd.Context(), enterAt, exitAt)
	if err != nil {
		return err
	}
	slog.Debug("visit added", "id", v.ID, "days", v.Days())

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), v)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added: %s to %s (#%d)\n", v.EnterAt, v.ExitAt, v.ID)
	return err
}
