package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexander-akhmetov/chime/internal/feed"
	"github.com/alexander-akhmetov/chime/internal/host"
	"github.com/alexander-akhmetov/chime/internal/sound"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sound and daemon status",
	Long: `Show which event kinds have a sound file, which audio player will be
used, and whether a daemon is running along with its current counts.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

type daemonStatus struct {
	Info    *daemonInfo
	Running bool
	RSSKB   uint64
	State   *host.StateDTO
	Note    string
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	settings := cfg.SoundSettings()
	player := sound.NewPlayer(settings)

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	md := statusMarkdown(sound.Summarize(settings), player.CommandName(), loadDaemonStatus(ctx))
	fmt.Print(renderMarkdown(md))
	return nil
}

func loadDaemonStatus(ctx context.Context) daemonStatus {
	info, err := readDaemonInfo()
	if err != nil {
		removeDaemonInfo()
		return daemonStatus{Note: err.Error() + ", removed"}
	}
	if info == nil {
		return daemonStatus{}
	}
	if !isProcessRunning(info.PID) {
		removeDaemonInfo()
		return daemonStatus{Info: info, Note: "stale daemon file, removed"}
	}

	st := daemonStatus{Info: info, Running: true}
	if rss, err := processRSSKB(info.PID); err == nil {
		st.RSSKB = rss
	}

	resp, err := host.Send(ctx, info.Socket, []byte(`{"type":"state"}`))
	if err != nil {
		st.Note = err.Error()
		return st
	}
	st.State = resp.State
	return st
}

func statusMarkdown(summary, playerName string, d daemonStatus) string {
	var b strings.Builder

	b.WriteString("# chime status\n\n")
	b.WriteString("## Sounds\n\n")
	b.WriteString("```\n")
	b.WriteString(summary)
	b.WriteString("```\n\n")
	if playerName != "" {
		fmt.Fprintf(&b, "Audio player: `%s`\n\n", playerName)
	} else {
		b.WriteString("Audio player: **none found**\n\n")
	}

	b.WriteString("## Daemon\n\n")
	if !d.Running {
		b.WriteString("Not running.")
		if d.Note != "" {
			fmt.Fprintf(&b, " (%s)", d.Note)
		}
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "- PID: %d\n", d.Info.PID)
	if startedAt, err := time.Parse(time.RFC3339, d.Info.StartedAt); err == nil {
		elapsed := time.Since(startedAt).Truncate(time.Second)
		fmt.Fprintf(&b, "- Started: %s (%s ago)\n", startedAt.Format("15:04:05"), elapsed)
	} else {
		b.WriteString("- Started: unknown\n")
	}
	fmt.Fprintf(&b, "- Socket: `%s`\n", d.Info.Socket)
	if d.Info.Listen != "" {
		fmt.Fprintf(&b, "- Feed: `%s`\n", feed.URL(d.Info.Listen))
	}
	if d.RSSKB > 0 {
		fmt.Fprintf(&b, "- Memory: %.1f MB\n", float64(d.RSSKB)/1024)
	}
	if d.State != nil {
		fmt.Fprintf(&b, "- Errors: %d, warnings: %d\n", d.State.Errors, d.State.Warnings)
	}
	if d.Note != "" {
		fmt.Fprintf(&b, "- Note: %s\n", d.Note)
	}
	return b.String()
}

// renderMarkdown renders md with glamour on a terminal and returns it
// unchanged otherwise.
func renderMarkdown(md string) string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return md
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-6, 40)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
