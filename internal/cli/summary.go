package cli

import (
	"github.com/spf13/cobra"

	"github.com/liamgriffiths/visits/internal/visit"
)

func newSummaryCmd() *cobra.Command {
	var username string
	var period, maxDays int

	cmd := &cobra.Command{
		Use:     "summary",
		Aliases: []string{"ls"},
		Short:   "Print a summary of your visits",
		Long: `Print every visit with the days left in the rolling window ending on
its exit date, followed by the days left today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, username, period, maxDays)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "whose log to summarize")
	cmd.Flags().IntVarP(&period, "period", "p", visit.DefaultPeriod, "number of days in a period")
	cmd.Flags().IntVarP(&maxDays, "days", "d", visit.DefaultMaxDays, "max number of days per period")

	return cmd
}

func runSummary(cmd *cobra.Command, username string, period, maxDays int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rules := windowRules(cmd.Flags().Changed("period"), period, cmd.Flags().Changed("days"), maxDays, cfg)
	if err := rules.Validate(); err != nil {
		return err
	}

	s, closeStores, err := openSession(cmd, cfg, username)
	if err != nil {
		return err
	}
	defer closeStores()

	sum, err := s.Summary(cmd.Context(), rules)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), sum)
	}
	return printSummary(cmd.OutOrStdout(), sum)
}
