package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/feed"
)

const reconnectDelay = time.Second

// Run shows the dashboard for the feed at url until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, url string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(NewModel(url), tea.WithAltScreen(), tea.WithContext(ctx))
	go follow(ctx, url, program.Send)

	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// follow reads the feed and forwards messages, reconnecting after failures.
func follow(ctx context.Context, url string, send func(tea.Msg)) {
	for {
		err := followOnce(ctx, url, send)
		if ctx.Err() != nil {
			return
		}
		debug.Logf("watch: feed disconnected: %v", err)
		send(DisconnectedMsg{Err: err})

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func followOnce(ctx context.Context, url string, send func(tea.Msg)) error {
	c, err := feed.Dial(ctx, url)
	if err != nil {
		return err
	}
	defer c.Close()

	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	send(ConnectedMsg{})
	for {
		msg, err := c.Next()
		if err != nil {
			return err
		}
		send(FeedMsg{Message: msg})
	}
}
