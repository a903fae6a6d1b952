package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	statusBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	stoppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Faint(true)

	kindStyles = map[string]lipgloss.Style{
		"success":        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"fail":           lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"warning":        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"error_increase": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"error_decrease": lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	}
)
