package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdant-io/verdant/internal/emissions"
)

// newEmissionsCmd creates the emissions command group.
func newEmissionsCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emissions",
		Short: "GHG emission calculations",
	}
	cmd.PersistentFlags().Bool("json", false, "emit JSON instead of a rendered report")
	cmd.AddCommand(
		newScope1Cmd(state),
		newScope2Cmd(state),
		newScope3Cmd(state),
		newFinancedCmd(state),
	)
	return cmd
}

// parseActivities converts repeated --activity key=value flags into the
// quantity map the calculators accept, rejecting negatives at the
// boundary.
func parseActivities(pairs []string) (map[string]float64, error) {
	activities := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		key, raw, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --activity %q, expected key=quantity", pair)
		}
		qty, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in --activity %q: %w", pair, err)
		}
		if qty < 0 {
			return nil, fmt.Errorf("%w: %s", emissions.ErrNegativeQuantity, key)
		}
		activities[key] += qty
	}
	return activities, nil
}

func newScope1Cmd(state *appState) *cobra.Command {
	var activityFlags []string

	cmd := &cobra.Command{
		Use:   "scope1",
		Short: "Direct emissions from fuel combustion and fleet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			activities, err := parseActivities(activityFlags)
			if err != nil {
				return err
			}
			result, err := emissions.NewCalculator(state.table).Scope1(cmd.Context(), activities)
			if err != nil {
				return err
			}
			return renderResult(cmd, result)
		},
	}
	cmd.Flags().StringArrayVar(&activityFlags, "activity", nil, "activity quantity as key=value (repeatable)")
	return cmd
}

func newScope2Cmd(state *appState) *cobra.Command {
	var (
		activityFlags    []string
		method           string
		renewablePercent float64
		fullyRenewable   bool
	)

	cmd := &cobra.Command{
		Use:   "scope2",
		Short: "Purchased energy emissions (location or market based)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			activities, err := parseActivities(activityFlags)
			if err != nil {
				return err
			}
			result, err := emissions.NewCalculator(state.table).Scope2(cmd.Context(), activities, emissions.Scope2Options{
				Method:           emissions.Scope2Method(method),
				RenewablePercent: renewablePercent,
				FullyRenewable:   fullyRenewable,
			})
			if err != nil {
				return err
			}
			return renderResult(cmd, result)
		},
	}
	cmd.Flags().StringArrayVar(&activityFlags, "activity", nil, "activity quantity as key=value (repeatable)")
	cmd.Flags().StringVar(&method, "method", string(emissions.Scope2LocationBased), "accounting method: location-based or market-based")
	cmd.Flags().Float64Var(&renewablePercent, "renewable-percent", 0, "declared renewable share for market-based (0-100)")
	cmd.Flags().BoolVar(&fullyRenewable, "fully-renewable", false, "declare 100% renewable procurement")
	return cmd
}

func newScope3Cmd(state *appState) *cobra.Command {
	var activityFlags []string

	cmd := &cobra.Command{
		Use:   "scope3",
		Short: "Value-chain emissions (travel, waste, purchased goods)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			activities, err := parseActivities(activityFlags)
			if err != nil {
				return err
			}
			result, err := emissions.NewCalculator(state.table).Scope3(cmd.Context(), activities)
			if err != nil {
				return err
			}
			return renderResult(cmd, result)
		},
	}
	cmd.Flags().StringArrayVar(&activityFlags, "activity", nil, "activity quantity as key=value (repeatable)")
	return cmd
}

func newFinancedCmd(state *appState) *cobra.Command {
	var input emissions.FinancedInput

	cmd := &cobra.Command{
		Use:   "financed",
		Short: "PCAF financed emissions for one counterparty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := emissions.NewFinancedCalculator(state.table).Calculate(cmd.Context(), input)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd, result)
			}

			cmd.Printf("Financed emissions (%s)\n", result.Methodology)
			cmd.Printf("  Counterparty emissions:  %s tCO2e\n", formatTonnes(result.CounterpartyEmissionsTonnes))
			cmd.Printf("  Attribution factor:      %.4f\n", result.AttributionFactor)
			cmd.Printf("  Financed emissions:      %s tCO2e\n", formatTonnes(result.FinancedEmissionsTonnes))
			cmd.Printf("  Portfolio intensity:     %s tCO2e/$M\n", formatTonnes(result.PortfolioCarbonIntensity))
			cmd.Printf("  PCAF data quality tier:  %d\n", result.DataQualityTier)
			if result.DataQualityTier == emissions.TierUnavailable {
				cmd.Println("  Warning: no usable counterparty data; this is a proxy zero, not a measurement")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&input.ReportedEmissionsTonnes, "reported-tonnes", 0, "counterparty-reported emissions in tonnes CO2e")
	cmd.Flags().Float64Var(&input.BuildingAreaM2, "building-area", 0, "financed building area in m²")
	cmd.Flags().Float64Var(&input.RevenueMillionUSD, "revenue", 0, "counterparty annual revenue in $M")
	cmd.Flags().StringVar(&input.Sector, "sector", "", "counterparty sector for intensity lookup")
	cmd.Flags().Float64Var(&input.OutstandingAmountUSD, "outstanding", 0, "outstanding exposure in USD")
	cmd.Flags().Float64Var(&input.TotalAssetOrEquityUSD, "assets", 0, "counterparty total assets or equity in USD")
	return cmd
}

// renderResult prints an emission result as a report or JSON.
func renderResult(cmd *cobra.Command, result emissions.Result) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, result)
	}

	cmd.Printf("%s\n", result.Methodology)
	cmd.Printf("  Total: %s kgCO2e (%s tCO2e)\n",
		formatKg(result.TotalKgCO2e), formatTonnes(result.TotalTonnesCO2e))

	keys := make([]string, 0, len(result.Breakdown))
	for key := range result.Breakdown {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cmd.Printf("    %-24s %s kgCO2e\n", key, formatKg(result.Breakdown[key]))
	}

	if result.TDLossesKgCO2e > 0 {
		cmd.Printf("  T&D losses (scope 3):    %s kgCO2e\n", formatKg(result.TDLossesKgCO2e))
	}
	if result.Uncertainty > 0 {
		cmd.Printf("  Uncertainty: ±%.0f%%\n", result.Uncertainty*100)
	}
	for _, key := range result.Skipped {
		cmd.Printf("  Warning: no factor for %q, treated as zero\n", key)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
