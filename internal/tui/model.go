// Package tui implements the `chime watch` live dashboard.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexander-akhmetov/chime/internal/feed"
)

// maxEvents is how many recent events the dashboard keeps.
const maxEvents = 20

// Model is the bubbletea model for the dashboard.
type Model struct {
	url       string
	connected bool
	err       error
	state     feed.StatePayload
	events    []feed.EventPayload
	spinner   spinner.Model
	width     int
	height    int
}

// NewModel creates a dashboard for the feed at url.
func NewModel(url string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		url:     url,
		spinner: s,
	}
}

// ConnectedMsg signals the feed connection is up.
type ConnectedMsg struct{}

// DisconnectedMsg signals the feed connection dropped or could not be made.
type DisconnectedMsg struct {
	Err error
}

// FeedMsg carries one message read from the feed.
type FeedMsg struct {
	Message feed.Message
}
