package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/melodic-software/medley/internal/adapters/outbound/config"
	"github.com/melodic-software/medley/internal/adapters/outbound/provider"
	"github.com/melodic-software/medley/internal/adapters/outbound/tui"
	"github.com/melodic-software/medley/internal/application"
	"github.com/melodic-software/medley/internal/domain"
)

const maxFixPasses = 100

func newFixCmd() *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
		ruleID     string
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Apply smart rename fixes for naming violations",
		Long:  "Analyze the project and rename violating types to carry their required suffix, updating every reference across the project atomically.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if dryRun {
				plans, err := planFixes(absPath, cfg, ruleID)
				if err != nil {
					return err
				}
				return renderPlans(cmd, plans, jsonOutput)
			}

			plans, err := applyFixes(absPath, cfg, ruleID)
			if err != nil {
				return err
			}
			if err := renderPlans(cmd, plans, jsonOutput); err != nil {
				return err
			}
			if !jsonOutput {
				fmt.Fprintf(cmd.OutOrStdout(), "\n  Applied %d renames.\n", len(plans))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show rename plans without applying them")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output plans as JSON")
	cmd.Flags().StringVar(&ruleID, "rule", "", "Fix only diagnostics from a specific rule ID")

	return cmd
}

func planFixes(absPath string, cfg domain.AnalysisConfig, ruleID string) ([]*domain.RenamePlan, error) {
	model := provider.New(absPath, cfg)
	if err := model.Load(); err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	report, err := application.NewAnalyzeService(model, cfg).Analyze()
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	renamer := application.NewRenameService(model, cfg)
	var plans []*domain.RenamePlan
	for _, d := range fixableDiagnostics(report, ruleID) {
		plan, err := renamer.Plan(d)
		if err != nil {
			return nil, fmt.Errorf("planning fix for %s: %w", d.TypeName, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// applyFixes runs analyze-fix passes until no fixable diagnostics remain.
// Each applied rename invalidates the structural model, so every pass
// rebuilds it and fixes the first remaining diagnostic.
func applyFixes(absPath string, cfg domain.AnalysisConfig, ruleID string) ([]*domain.RenamePlan, error) {
	var applied []*domain.RenamePlan
	for pass := 0; pass < maxFixPasses; pass++ {
		model := provider.New(absPath, cfg)
		if err := model.Load(); err != nil {
			return applied, fmt.Errorf("loading project: %w", err)
		}
		report, err := application.NewAnalyzeService(model, cfg).Analyze()
		if err != nil {
			return applied, fmt.Errorf("analysis failed: %w", err)
		}

		fixable := fixableDiagnostics(report, ruleID)
		if len(fixable) == 0 {
			return applied, nil
		}

		d := fixable[0]
		plan, _, err := application.NewRenameService(model, cfg).Fix(d)
		if err != nil {
			return applied, fmt.Errorf("fixing %s: %w", d.TypeName, err)
		}
		applied = append(applied, plan)
	}
	return applied, fmt.Errorf("fix pass limit reached with fixable diagnostics remaining")
}

func fixableDiagnostics(report *domain.Report, ruleID string) []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, d := range report.Diagnostics {
		if !d.Fixable() {
			continue
		}
		if ruleID != "" && d.ID != ruleID {
			continue
		}
		out = append(out, d)
	}
	return out
}

func renderPlans(cmd *cobra.Command, plans []*domain.RenamePlan, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plans)
	}
	if len(plans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "  Nothing to fix.")
		return nil
	}
	for _, plan := range plans {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlan(plan))
	}
	return nil
}
