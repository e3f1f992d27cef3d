package portfolio

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	stat       lipgloss.Style
	statValue  lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	plan       lipgloss.Style
	planMeta   lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		stat:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		statValue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		plan:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		planMeta:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
