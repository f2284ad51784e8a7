package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/melodic-software/medley/internal/domain"
)

// ── warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fixStyle      = lipgloss.NewStyle().Foreground(success)
	arrowStyle    = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders a full analysis report: a summary box followed by
// diagnostics grouped by category.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	title := headerStyle.Render("medley")
	subtitle := dimStyle.Render("Convention Report")
	counts := summaryLine(report.Summary)

	header := title + "\n" + subtitle + "\n\n" + counts
	if report.CommitHash != "" {
		header += "\n" + faintStyle.Render(shortHash(report.CommitHash))
	}
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	if len(report.Diagnostics) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		return b.String()
	}

	for _, category := range []string{domain.CategoryNaming, domain.CategoryBoundaries} {
		diags := byCategory(report.Diagnostics, category)
		if len(diags) == 0 {
			continue
		}
		b.WriteString("  ")
		b.WriteString(titleStyle.Render(categoryTitle(category)))
		b.WriteString("\n\n")
		for _, d := range diags {
			renderDiagnostic(&b, d)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n")
	return b.String()
}

// RenderPlan renders a rename plan, one line per affected location.
func RenderPlan(plan *domain.RenamePlan) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(plan.CurrentName))
	b.WriteString(arrowStyle.Render(" → "))
	b.WriteString(fixStyle.Render(plan.TargetName))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d locations)", len(plan.Locations))))
	b.WriteString("\n")
	for _, loc := range plan.Locations {
		b.WriteString("    ")
		b.WriteString(fileStyle.Render(fmt.Sprintf("%s:%d", loc.File, loc.Line)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHistory renders past run entries, newest last.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No recorded runs.") + "\n"
	}
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Run History"))
	b.WriteString("\n\n")
	for _, e := range entries {
		line := fmt.Sprintf("%-25s %s", e.Timestamp, renderCounts(e.Errors, e.Warnings, e.Infos))
		if e.CommitHash != "" {
			line += "  " + faintStyle.Render(shortHash(e.CommitHash))
		}
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func renderDiagnostic(b *strings.Builder, d domain.Diagnostic) {
	b.WriteString("  ")
	b.WriteString(severityTag(d.Severity))
	b.WriteString(" ")
	b.WriteString(dimStyle.Render(d.ID))
	b.WriteString("  ")
	b.WriteString(d.Message)
	if d.Fixable() {
		b.WriteString("  ")
		b.WriteString(fixStyle.Render("[fixable]"))
	}
	b.WriteString("\n")
	if d.Location.File != "" {
		b.WriteString("      ")
		b.WriteString(fileStyle.Render(fmt.Sprintf("%s:%d", d.Location.File, d.Location.Line)))
		b.WriteString("\n")
	}
}

func summaryLine(s domain.Summary) string {
	if s.Errors+s.Warnings+s.Infos == 0 {
		return passStyle.Render("clean")
	}
	return renderCounts(s.Errors, s.Warnings, s.Infos)
}

func renderCounts(errors, warnings, infos int) string {
	var parts []string
	if errors > 0 {
		parts = append(parts, errorTagStyle.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings > 0 {
		parts = append(parts, warnTagStyle.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if infos > 0 {
		parts = append(parts, infoTagStyle.Render(fmt.Sprintf("%d info", infos)))
	}
	if len(parts) == 0 {
		return passStyle.Render("clean")
	}
	return strings.Join(parts, "  ")
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("ERROR")
	case domain.SeverityWarning:
		return warnTagStyle.Render(" WARN")
	case domain.SeverityInfo:
		return infoTagStyle.Render(" INFO")
	default:
		return dimStyle.Render(severity)
	}
}

func categoryTitle(category string) string {
	switch category {
	case domain.CategoryNaming:
		return "Naming Conventions"
	case domain.CategoryBoundaries:
		return "Module Boundaries"
	default:
		return category
	}
}

func byCategory(diags []domain.Diagnostic, category string) []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, d := range diags {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
