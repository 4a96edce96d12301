// Package display renders attestctl output: lipgloss page headers, tables
// written with text/tabwriter, and JSON for --output=json.
package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#42E7FF"))

var subtitleStyle = lipgloss.NewStyle().Faint(true)

var headerStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(lipgloss.Color("#7F6DFF")).
	MarginBottom(1)

var activeTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#60F281"))

var inactiveTabStyle = lipgloss.NewStyle().Faint(true)

// PageHeader renders a title with an optional subtitle under it, underlined
// across the width of the longer of the two.
func PageHeader(title, subtitle string) string {
	block := titleStyle.Render(strings.TrimSpace(title))
	if s := strings.TrimSpace(subtitle); s != "" {
		block = lipgloss.JoinVertical(lipgloss.Left, block, subtitleStyle.Render(s))
	}
	return headerStyle.Render(block)
}

// CycleTab moves from tab current by delta and wraps around at both ends.
// With no tabs it returns 0.
func CycleTab(current, delta, count int) int {
	if count <= 0 {
		return 0
	}
	return ((current+delta)%count + count) % count
}

// SectionStrip renders the tab names on one line with the active tab
// bracketed. An out-of-range active index wraps like CycleTab.
func SectionStrip(sections []string, active int) string {
	if len(sections) == 0 {
		return ""
	}
	active = CycleTab(active, 0, len(sections))

	parts := make([]string, len(sections))
	for i, s := range sections {
		if i == active {
			parts[i] = activeTabStyle.Render("[" + s + "]")
		} else {
			parts[i] = inactiveTabStyle.Render(" " + s + " ")
		}
	}
	return strings.Join(parts, " ")
}
