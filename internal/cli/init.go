package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var username string
	var period, maxDays int

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Save default settings",
		Long: `Save a default username, database, and window rule to
~/.config/visits/config.yaml so later commands can omit them.

Examples:
  visits init -u alice
  visits init -u alice --database-url postgres://localhost/visits`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, username, period, maxDays)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "default username")
	cmd.Flags().IntVarP(&period, "period", "p", 0, "default number of days in a period")
	cmd.Flags().IntVarP(&maxDays, "days", "d", 0, "default max number of days per period")

	return cmd
}

func runInit(cmd *cobra.Command, username string, period, maxDays int) error {
	if period < 0 || maxDays < 0 {
		return fmt.Errorf("period and days must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if username != "" {
		cfg.Username = username
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagDatabaseURL != "" {
		cfg.DatabaseURL = flagDatabaseURL
	}
	if period > 0 {
		cfg.Period = period
	}
	if maxDays > 0 {
		cfg.MaxDays = maxDays
	}

	if err := windowRules(false, 0, false, 0, cfg).Validate(); err != nil {
		return err
	}

	if err := saveConfig(cfg); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"path":  path,
			"saved": true,
		})
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved config to %s\n", path)
	return err
}
