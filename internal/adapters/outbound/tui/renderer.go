package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"github.com/stacklint/stacklint/internal/application"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
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
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	ruleTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	pathStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderResult renders a lint result as a styled terminal report.
func RenderResult(result *application.LintResult) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("stacklint")
	subtitle := dimStyle.Render(result.TemplatePath)
	statusStyled := passStyle.Render("PASS")
	if result.Status == application.StatusFail {
		statusStyled = failStyle.Render(fmt.Sprintf("FAIL  %d violation(s)", len(result.Violations)))
	}
	statusStyled = lipgloss.NewStyle().Bold(true).Render(statusStyled)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + statusStyled))
	b.WriteString("\n\n")

	if len(result.Violations) == 0 {
		b.WriteString("  " + passStyle.Render("No limit violations found.") + "\n")
		if result.CommitHash != "" {
			b.WriteString("  " + faintStyle.Render("commit "+shortHash(result.CommitHash)) + "\n")
		}
		return b.String()
	}

	// ── Violations grouped by resource ──
	b.WriteString("  " + titleStyle.Render("Violations") + "\n\n")
	lastResource := ""
	for _, v := range result.Violations {
		resource := resourceHeading(v.Path)
		if resource != lastResource {
			if lastResource != "" {
				b.WriteString("\n")
			}
			b.WriteString("  " + titleStyle.Render(resource) + "\n")
			lastResource = resource
		}
		b.WriteString("    " + ruleTagStyle.Render(v.RuleID))
		b.WriteString("  " + v.Message + "\n")
		b.WriteString("       " + pathStyle.Render(strings.Join(v.Path, "/")) + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine + "\n")
	if result.CommitHash != "" {
		b.WriteString("  " + faintStyle.Render("commit "+shortHash(result.CommitHash)) + "\n")
	}

	return b.String()
}

// resourceHeading derives a humanized heading from a violation path,
// e.g. ["Resources","MyInstanceProfile","Properties","Roles"] →
// "My Instance Profile".
func resourceHeading(path []string) string {
	if len(path) < 2 {
		return strings.Join(path, "/")
	}
	return strings.Join(camelcase.Split(path[1]), " ")
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
