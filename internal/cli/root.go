// Package cli implements the verdant command-line interface.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verdant-io/verdant/internal/config"
	"github.com/verdant-io/verdant/internal/factors"
	"github.com/verdant-io/verdant/internal/logging"
)

// appState carries configuration and shared collaborators from the root
// command's setup into subcommand runs. It replaces any notion of global
// mutable state: everything a command needs is reachable from here.
type appState struct {
	cfg    *config.Config
	logger zerolog.Logger
	table  *factors.Table
}

// NewRootCmd creates the root cobra command with all subcommands wired.
func NewRootCmd(ver string) *cobra.Command {
	state := &appState{}

	cmd := &cobra.Command{
		Use:     "verdant",
		Short:   "Verdant ESG reporting engine",
		Long:    "Verdant: GHG emissions calculation, framework progress tracking, and ESG compliance scoring",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Logging.Level = "debug"
			}

			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}

			table := factors.NewTable()
			for _, path := range cfg.Factors.Datasets {
				ds, err := factors.LoadDataset(path)
				if err != nil {
					return err
				}
				if err := table.Merge(ds); err != nil {
					return fmt.Errorf("apply dataset %s: %w", path, err)
				}
				logger.Info().
					Str("source", ds.Source).
					Str("version", ds.Version).
					Int("factors", len(ds.Factors)).
					Msg("factor dataset applied")
			}

			state.cfg = cfg
			state.logger = logger
			state.table = table

			cmd.SetContext(logging.WithContext(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "verdant.yaml", "path to configuration file")

	cmd.AddCommand(
		newEmissionsCmd(state),
		newComplianceCmd(state),
		newForecastCmd(state),
		newFactorsCmd(state),
		newServeCmd(state),
	)

	return cmd
}

const rootCmdExample = `  # Calculate scope 1 emissions from activity quantities
  verdant emissions scope1 --activity naturalGasKwh=12000 --activity dieselLiters=300

  # Market-based scope 2 with 40% renewable procurement
  verdant emissions scope2 --method market-based --renewable-percent 40 --activity gridElectricityKwh=50000

  # PCAF financed emissions for one counterparty
  verdant emissions financed --outstanding 5000000 --assets 50000000 --reported-tonnes 100000

  # Company compliance scores
  verdant compliance score --company 4f3a1f9e-8a6b-4f8e-9d7c-2b1a0c9e8d7f

  # Project six months of emissions
  verdant forecast --company 4f3a1f9e-8a6b-4f8e-9d7c-2b1a0c9e8d7f --periods 6

  # Run the REST API
  verdant serve`
