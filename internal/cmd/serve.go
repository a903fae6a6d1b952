package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/chime/internal/config"
	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/engine"
	"github.com/alexander-akhmetov/chime/internal/feed"
	"github.com/alexander-akhmetov/chime/internal/host"
	"github.com/alexander-akhmetov/chime/internal/sound"
)

const shutdownTimeout = 3 * time.Second

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notification daemon",
	Long: `Run the chime daemon in the foreground.

The daemon listens on a unix socket for messages from editor hooks
(see chime notify) and plays sounds for the events derived from them.
When a listen address is configured it also serves a live event feed
over WebSocket at /events (see chime watch).

Signals:
  SIGHUP          re-read volume and enabled from the config
  SIGINT/SIGTERM  shut down`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Address for the event feed, empty to disable (overrides CHIME_LISTEN)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	listenChanged := cmd.Flags().Changed("listen")
	overrides := func(c *config.Config) {
		c.ApplyCLIFlags(socketFlag, serveListen, listenChanged)
	}
	overrides(cfg)

	player := sound.NewPlayer(cfg.SoundSettings())
	if !player.Available() {
		fmt.Fprintln(os.Stderr, "warning: no audio player found, sounds will not play")
	}
	defer player.Wait()

	workspace := host.NewWorkspace()
	eng := engine.New(workspace, config.NewSource(cfg.ConfigDir(), cfg.LocalDir(), overrides), player)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := host.NewServer(cfg.SocketPath(), host.NewDispatcher(eng, workspace))
	if err != nil {
		return err
	}
	defer srv.Close()

	if cfg.Listen != "" {
		shutdown, err := startFeed(eng, cfg.Listen)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	if err := writeDaemonInfo(srv.SocketPath(), cfg.Listen); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write daemon file: %v\n", err)
	}
	defer removeDaemonInfo()

	go reloadOnHangup(ctx, eng)

	fmt.Printf("chime listening on %s\n", srv.SocketPath())
	if cfg.Listen != "" {
		fmt.Printf("event feed at %s\n", feed.URL(cfg.Listen))
	}

	return srv.Serve(ctx)
}

// startFeed serves the WebSocket feed on addr and subscribes it to eng.
func startFeed(eng *engine.Engine, addr string) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	b := feed.NewBroadcaster(eng.State)
	eng.Subscribe(b.Publish)

	httpSrv := &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.Logf("feed: server stopped: %v", err)
		}
	}()

	return func() {
		b.Close()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpSrv.Shutdown(ctx)
	}, nil
}

func reloadOnHangup(ctx context.Context, eng *engine.Engine) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			debug.Logf("serve: SIGHUP, reloading config")
			eng.OnConfigChanged()
		}
	}
}
