package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/melodic-software/medley/internal/adapters/outbound/config"
)

// registerResources registers all Medley MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. medley://report - current analysis report
	s.AddResource(
		mcplib.NewResource(
			"medley://report",
			"Analysis Report",
			mcplib.WithResourceDescription("Current naming and boundary diagnostic report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)

	// 2. medley://rules - rule catalog
	s.AddResource(
		mcplib.NewResource(
			"medley://rules",
			"Rule Catalog",
			mcplib.WithResourceDescription("The rules Medley enforces"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(),
	)

	// 3. medley://config - effective analysis configuration
	s.AddResource(
		mcplib.NewResource(
			"medley://config",
			"Effective Configuration",
			mcplib.WithResourceDescription("The merged analysis configuration in effect for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		_, _, report, err := newAnalysis(projectPath)
		if err != nil {
			return nil, err
		}
		return jsonResource("medley://report", report)
	}
}

func handleRulesResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonResource("medley://rules", ruleCatalog())
	}
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return jsonResource("medley://config", cfg)
	}
}

func jsonResource(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
