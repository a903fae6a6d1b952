package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	boxWidth := max(m.width-4, 30)

	var b strings.Builder
	b.WriteString(titleStyle.Render("🔔 CHIME"))
	b.WriteString("\n")
	b.WriteString(statusBoxStyle.Width(boxWidth).Render(m.renderStatus()))
	b.WriteString("\n")
	b.WriteString(logBoxStyle.Width(boxWidth).Render(m.renderEvents()))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderStatus() string {
	var lines []string

	if m.connected {
		lines = append(lines, runningStyle.Render("● connected")+" "+labelStyle.Render(m.url))
	} else {
		line := m.spinner.View() + " connecting to " + m.url
		if m.err != nil {
			line += "\n" + stoppedStyle.Render(m.err.Error())
		}
		lines = append(lines, line)
	}

	lines = append(lines,
		labelStyle.Render("Errors:   ")+valueStyle.Render(fmt.Sprintf("%d", m.state.Errors)),
		labelStyle.Render("Warnings: ")+valueStyle.Render(fmt.Sprintf("%d", m.state.Warnings)),
	)
	return strings.Join(lines, "\n")
}

func (m Model) renderEvents() string {
	header := labelStyle.Render(fmt.Sprintf("Events (%d)", len(m.events)))
	if len(m.events) == 0 {
		return header + "\n" + mutedStyle.Render("no events yet")
	}

	lines := []string{header}
	for i := len(m.events) - 1; i >= 0; i-- {
		ev := m.events[i]
		kind := ev.Kind
		if style, ok := kindStyles[kind]; ok && !ev.Muted {
			kind = style.Render(kind)
		}
		line := fmt.Sprintf("%s  %-16s %s", ev.At.Local().Format("15:04:05"), kind, ev.Origin)
		if ev.Muted {
			line = mutedStyle.Render(line + "  (muted)")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderHelp() string {
	return helpStyle.Render(strings.Join([]string{"c: clear", "q: quit"}, " • "))
}
