package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melodic-software/medley/internal/domain"
	"github.com/melodic-software/medley/internal/domain/boundary"
	"github.com/melodic-software/medley/internal/domain/rules"
)

type ruleInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Suffix   string `json:"suffix,omitempty"`
}

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules Medley enforces",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := ruleCatalog()

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			for _, r := range infos {
				suffix := r.Suffix
				if suffix == "" {
					suffix = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %-8s %-12s %-15s %s\n",
					r.ID, r.Severity, r.Category, suffix, r.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules as JSON")

	return cmd
}

func ruleCatalog() []ruleInfo {
	var infos []ruleInfo
	for _, r := range rules.All() {
		infos = append(infos, ruleInfo{
			ID:       r.ID,
			Name:     r.Name,
			Category: domain.CategoryNaming,
			Severity: r.Severity,
			Suffix:   r.RequiredSuffix,
		})
	}
	infos = append(infos, ruleInfo{
		ID:       boundary.IDCrossModule,
		Name:     "cross-module reference outside Contracts",
		Category: domain.CategoryBoundaries,
		Severity: domain.SeverityWarning,
	})
	return infos
}
