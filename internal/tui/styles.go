package tui

import "github.com/charmbracelet/lipgloss"

var solaceGreen = lipgloss.Color("#265b4e")

type Styles struct {
	Title  lipgloss.Style
	Search lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(solaceGreen).
			MarginBottom(1),
		Search: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(solaceGreen).
			Padding(0, 1),
		Status: lipgloss.NewStyle().Faint(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#c0392b")).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
