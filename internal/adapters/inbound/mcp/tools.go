package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/melodic-software/medley/internal/adapters/outbound/config"
	"github.com/melodic-software/medley/internal/adapters/outbound/provider"
	"github.com/melodic-software/medley/internal/application"
	"github.com/melodic-software/medley/internal/domain"
	"github.com/melodic-software/medley/internal/domain/boundary"
	"github.com/melodic-software/medley/internal/domain/rules"
)

// registerTools registers all Medley MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. medley_analyze
	s.AddTool(
		mcplib.NewTool("medley_analyze",
			mcplib.WithDescription("Analyze the project's naming conventions and module boundaries, returning the full diagnostic report as JSON"),
		),
		handleAnalyze(projectPath),
	)

	// 2. medley_rules
	s.AddTool(
		mcplib.NewTool("medley_rules",
			mcplib.WithDescription("Returns the catalog of rules Medley enforces"),
		),
		handleRules(),
	)

	// 3. medley_rename_plan
	s.AddTool(
		mcplib.NewTool("medley_rename_plan",
			mcplib.WithDescription("Plan the rename fix for a violating type without touching any file"),
			mcplib.WithString("type",
				mcplib.Required(),
				mcplib.Description("Name of the violating type to plan a rename for"),
			),
		),
		handleRenamePlan(projectPath),
	)

	// 4. medley_apply_fix
	s.AddTool(
		mcplib.NewTool("medley_apply_fix",
			mcplib.WithDescription("Apply the rename fix for a violating type, updating every reference across the project atomically"),
			mcplib.WithString("type",
				mcplib.Required(),
				mcplib.Description("Name of the violating type to rename"),
			),
		),
		handleApplyFix(projectPath),
	)
}

// newAnalysis builds the structural model and runs one analysis pass.
func newAnalysis(projectPath string) (*provider.GoModel, domain.AnalysisConfig, *domain.Report, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return nil, domain.AnalysisConfig{}, nil, fmt.Errorf("loading config: %w", err)
	}
	model := provider.New(projectPath, cfg)
	if err := model.Load(); err != nil {
		return nil, domain.AnalysisConfig{}, nil, fmt.Errorf("loading project: %w", err)
	}
	report, err := application.NewAnalyzeService(model, cfg).Analyze()
	if err != nil {
		return nil, domain.AnalysisConfig{}, nil, fmt.Errorf("analysis failed: %w", err)
	}
	return model, cfg, report, nil
}

func handleAnalyze(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		_, _, report, err := newAnalysis(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(report)
	}
}

func handleRules() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(ruleCatalog())
	}
}

func handleRenamePlan(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		typeName, err := request.RequireString("type")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		model, cfg, report, err := newAnalysis(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		d, ok := findFixable(report, typeName)
		if !ok {
			return errorResult(fmt.Sprintf("no fixable diagnostic for type %q", typeName)), nil
		}

		plan, err := application.NewRenameService(model, cfg).Plan(d)
		if err != nil {
			return errorResult(fmt.Sprintf("planning rename failed: %v", err)), nil
		}
		return jsonResult(plan)
	}
}

func handleApplyFix(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		typeName, err := request.RequireString("type")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		model, cfg, report, err := newAnalysis(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		d, ok := findFixable(report, typeName)
		if !ok {
			return errorResult(fmt.Sprintf("no fixable diagnostic for type %q", typeName)), nil
		}

		plan, result, err := application.NewRenameService(model, cfg).Fix(d)
		if err != nil {
			return errorResult(fmt.Sprintf("applying fix failed: %v", err)), nil
		}

		return jsonResult(struct {
			Plan   *domain.RenamePlan   `json:"plan"`
			Result *domain.RenameResult `json:"result"`
		}{Plan: plan, Result: result})
	}
}

func findFixable(report *domain.Report, typeName string) (domain.Diagnostic, bool) {
	for _, d := range report.Diagnostics {
		if d.Fixable() && d.TypeName == typeName {
			return d, true
		}
	}
	return domain.Diagnostic{}, false
}

type ruleEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Suffix   string `json:"suffix,omitempty"`
}

func ruleCatalog() []ruleEntry {
	var entries []ruleEntry
	for _, r := range rules.All() {
		entries = append(entries, ruleEntry{
			ID:       r.ID,
			Name:     r.Name,
			Category: domain.CategoryNaming,
			Severity: r.Severity,
			Suffix:   r.RequiredSuffix,
		})
	}
	entries = append(entries, ruleEntry{
		ID:       boundary.IDCrossModule,
		Name:     "cross-module reference outside Contracts",
		Category: domain.CategoryBoundaries,
		Severity: domain.SeverityWarning,
	})
	return entries
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
