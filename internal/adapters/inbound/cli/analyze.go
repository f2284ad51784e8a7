package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/melodic-software/medley/internal/adapters/outbound/baseline"
	"github.com/melodic-software/medley/internal/adapters/outbound/config"
	"github.com/melodic-software/medley/internal/adapters/outbound/gitinfo"
	"github.com/melodic-software/medley/internal/adapters/outbound/history"
	"github.com/melodic-software/medley/internal/adapters/outbound/provider"
	"github.com/melodic-software/medley/internal/adapters/outbound/tui"
	"github.com/melodic-software/medley/internal/application"
	"github.com/melodic-software/medley/internal/domain"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		jsonOutput     bool
		ciMode         bool
		failOn         string
		useBaseline    bool
		updateBaseline bool
		showHistory    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze naming conventions and module boundaries",
		Long:  "Parse a Go project into a structural model and report suffix naming violations and cross-module boundary violations.",
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

			model := provider.New(absPath, cfg)
			if err := model.Load(); err != nil {
				return fmt.Errorf("loading project: %w", err)
			}

			report, err := application.NewAnalyzeService(model, cfg).Analyze()
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			// Attach git commit hash if available
			gi := gitinfo.New()
			if hash, err := gi.CommitHash(absPath); err == nil {
				report.CommitHash = hash
			}

			store := baseline.New()
			if updateBaseline {
				fingerprints := make([]string, 0, len(report.Diagnostics))
				for _, d := range report.Diagnostics {
					fingerprints = append(fingerprints, application.Fingerprint(d))
				}
				if err := store.Save(absPath, fingerprints); err != nil {
					return fmt.Errorf("saving baseline: %w", err)
				}
			}
			if useBaseline {
				known, err := store.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading baseline: %w", err)
				}
				report.Diagnostics = application.NewFindings(report.Diagnostics, known)
				report.Summarize()
			}

			// Save to history
			hist := history.New()
			entry := domain.RunEntry{
				Timestamp:  time.Now().Format(time.RFC3339),
				CommitHash: report.CommitHash,
				Errors:     report.Summary.Errors,
				Warnings:   report.Summary.Warnings,
				Infos:      report.Summary.Infos,
			}
			_ = hist.Save(absPath, entry) // best-effort

			if showHistory {
				entries, err := hist.Load(absPath)
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode {
				return ciVerdict(report.Summary, failOn)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if violations at or above --fail-on")
	cmd.Flags().StringVar(&failOn, "fail-on", domain.SeverityError, "Severity that fails CI mode (error, warning, info)")
	cmd.Flags().BoolVar(&useBaseline, "baseline", false, "Report only findings absent from the stored baseline")
	cmd.Flags().BoolVar(&updateBaseline, "update-baseline", false, "Accept all current findings into the baseline")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show run history")

	return cmd
}

func ciVerdict(s domain.Summary, failOn string) error {
	failing := 0
	switch failOn {
	case domain.SeverityInfo:
		failing = s.Errors + s.Warnings + s.Infos
	case domain.SeverityWarning:
		failing = s.Errors + s.Warnings
	case domain.SeverityError:
		failing = s.Errors
	default:
		return fmt.Errorf("unknown --fail-on severity %q", failOn)
	}
	if failing > 0 {
		return fmt.Errorf("%d violations at or above severity %q", failing, failOn)
	}
	return nil
}
