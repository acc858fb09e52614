package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	var username string
	var id int64

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove"},
		Short:   "Remove a visit from your log",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, username, id)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "whose log to remove from")
	cmd.Flags().Int64Var(&id, "id", 0, "visit ID to remove")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runRemove(cmd *cobra.Command, username string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid visit ID: %d", id)
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

	n, err := s.RemoveVisit(cmd.Context(), id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"id":      id,
			"removed": n > 0,
		})
	}

	// Missing and not-owned are reported the same way.
	if n == 0 {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "No visit with id %d.\n", id)
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed visit #%d.\n", id)
	return err
}
