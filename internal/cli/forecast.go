package cli

import (
	"github.com/spf13/cobra"

	"github.com/verdant-io/verdant/internal/forecast"
	"github.com/verdant-io/verdant/internal/store"
)

// newForecastCmd creates the forecast command, projecting a company's
// monthly emission totals forward with a linear trend.
func newForecastCmd(state *appState) *cobra.Command {
	var (
		companyFlag string
		periods     int
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project monthly emissions from recorded totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			companyID, err := parseCompany(companyFlag)
			if err != nil {
				return err
			}

			st, err := store.Open(state.cfg.Database.Path)
			if err != nil {
				return err
			}

			history, err := st.MonthlyEmissionTotals(cmd.Context(), companyID)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				cmd.Println("No emission totals recorded for this company yet.")
				return nil
			}

			points := forecast.Project(history, periods)
			for _, p := range points {
				marker := ""
				if p.Forecast {
					marker = "  (forecast)"
				}
				cmd.Printf("%04d-%02d  %14s kgCO2e%s\n", p.Year, p.Month, formatKg(p.TotalKgCO2e), marker)
			}

			if len(history) < forecast.MinHistoryPoints {
				cmd.Printf("Need at least %d months of history to forecast; showing recorded totals only.\n",
					forecast.MinHistoryPoints)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&companyFlag, "company", "", "company UUID")
	cmd.Flags().IntVar(&periods, "periods", 6, "number of months to project")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}
