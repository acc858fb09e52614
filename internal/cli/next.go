package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/liamgriffiths/visits/internal/visit"
)

func newNextCmd() *cobra.Command {
	var username string
	var period, maxDays, length int

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Find the next date you can visit",
		Long: `Find the earliest entry date, from today on, for a visit of --length days
that stays within the allowance.

Examples:
  visits next -u alice
  visits next -u alice --length 14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, username, period, maxDays, length)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "whose log to check")
	cmd.Flags().IntVarP(&period, "period", "p", visit.DefaultPeriod, "number of days in a period")
	cmd.Flags().IntVarP(&maxDays, "days", "d", visit.DefaultMaxDays, "max number of days per period")
	cmd.Flags().IntVarP(&length, "length", "l", visit.DefaultLength, "length of the visit in days")

	return cmd
}

func runNext(cmd *cobra.Command, username string, period, maxDays, length int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rules := windowRules(cmd.Flags().Changed("period"), period, cmd.Flags().Changed("days"), maxDays, cfg)
	rules.Length = length
	if err := rules.Validate(); err != nil {
		return err
	}

	s, closeStores, err := openSession(cmd, cfg, username)
	if err != nil {
		return err
	}
	defer closeStores()

	v, err := s.NextVisit(cmd.Context(), rules)
	if err != nil {
		return err
	}
	slog.Debug("next visit found", "enter_at", v.EnterAt.String(), "period", rules.Period, "max_days", rules.MaxDays)

	report := v.Report(s.Today())
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), report)
	}
	return printCandidate(cmd.OutOrStdout(), report)
}
