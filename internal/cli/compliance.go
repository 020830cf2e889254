package cli

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verdant-io/verdant/internal/disclosure"
	"github.com/verdant-io/verdant/internal/events"
	"github.com/verdant-io/verdant/internal/scoring"
	"github.com/verdant-io/verdant/internal/store"
)

// newComplianceCmd creates the compliance command group. These commands
// read and write the local database configured in the config file.
func newComplianceCmd(state *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Framework progress and ESG scores",
	}
	cmd.PersistentFlags().String("company", "", "company UUID")
	_ = cmd.MarkPersistentFlagRequired("company")

	cmd.AddCommand(
		newComplianceScoreCmd(state),
		newComplianceProgressCmd(state),
		newComplianceSetCmd(state),
	)
	return cmd
}

func parseCompany(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --company %q: %w", raw, err)
	}
	return id, nil
}

func flagCompanyID(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("company")
	return parseCompany(raw)
}

func newComplianceScoreCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Show a company's aggregate ESG scores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			companyID, err := flagCompanyID(cmd)
			if err != nil {
				return err
			}

			st, err := store.Open(state.cfg.Database.Path)
			if err != nil {
				return err
			}

			snapshot, err := st.LoadScoreSnapshot(cmd.Context(), companyID)
			if err != nil {
				return err
			}
			if snapshot == nil {
				cmd.Println("No scores recorded for this company yet.")
				return nil
			}
			renderScores(cmd, *snapshot)
			return nil
		},
	}
}

func newComplianceProgressCmd(state *appState) *cobra.Command {
	var frameworkFlag string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show disclosure completion for one framework",
		RunE: func(cmd *cobra.Command, _ []string) error {
			companyID, err := flagCompanyID(cmd)
			if err != nil {
				return err
			}
			fw, err := disclosure.ParseFrameworkID(frameworkFlag)
			if err != nil {
				return err
			}

			st, err := store.Open(state.cfg.Database.Path)
			if err != nil {
				return err
			}

			inst, err := st.LoadFrameworkInstance(cmd.Context(), companyID, fw)
			if err != nil {
				return err
			}
			if inst == nil {
				inst = disclosure.NewInstance(fw, companyID)
			}
			progress := inst.RecomputeProgress()

			cmd.Printf("%s: %d%% complete (%d of %d fields)\n",
				fw, progress.Percent, progress.Completed, progress.Total)

			inst.Tree.Walk(func(field *disclosure.Field) {
				mark := " "
				if field.Completed {
					mark = "x"
				}
				cmd.Printf("  [%s] %-24s %s\n", mark, field.ID, field.Name)
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&frameworkFlag, "framework", "", "framework identifier (gri, tcfd, sdg, ...)")
	_ = cmd.MarkFlagRequired("framework")
	return cmd
}

func newComplianceSetCmd(state *appState) *cobra.Command {
	var (
		frameworkFlag string
		fieldFlag     string
		valueFlag     string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set one disclosure field and recompute scores",
		RunE: func(cmd *cobra.Command, _ []string) error {
			companyID, err := flagCompanyID(cmd)
			if err != nil {
				return err
			}
			fw, err := disclosure.ParseFrameworkID(frameworkFlag)
			if err != nil {
				return err
			}

			st, err := store.Open(state.cfg.Database.Path)
			if err != nil {
				return err
			}

			svc := scoring.NewService(st, events.Nop{})
			scores, err := svc.SetField(cmd.Context(), companyID, fw, fieldFlag, valueFlag)
			if err != nil {
				return err
			}
			renderScores(cmd, scores)
			return nil
		},
	}
	cmd.Flags().StringVar(&frameworkFlag, "framework", "", "framework identifier")
	cmd.Flags().StringVar(&fieldFlag, "field", "", "field identifier within the framework")
	cmd.Flags().StringVar(&valueFlag, "value", "", "field value")
	_ = cmd.MarkFlagRequired("framework")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func renderScores(cmd *cobra.Command, scores scoring.Scores) {
	cmd.Printf("Overall:       %d\n", scores.Overall)
	cmd.Printf("Environmental: %d\n", scores.Environmental)
	cmd.Printf("Social:        %d\n", scores.Social)
	cmd.Printf("Governance:    %d\n", scores.Governance)

	if len(scores.PerFramework) == 0 {
		return
	}
	ids := make([]string, 0, len(scores.PerFramework))
	for id := range scores.PerFramework {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	cmd.Println("Per framework:")
	for _, id := range ids {
		fs := scores.PerFramework[disclosure.FrameworkID(id)]
		cmd.Printf("  %-6s score %3d  progress %3d%%\n", id, fs.Score, fs.Progress)
	}
}
