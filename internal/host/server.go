package host

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexander-akhmetov/chime/internal/debug"
)

// connTimeout bounds how long one client may hold a connection.
const connTimeout = 10 * time.Second

// Server accepts one JSON message per connection on a unix socket and
// replies with a Response.
type Server struct {
	socketPath string
	listener   net.Listener
	dispatcher *Dispatcher

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewServer listens on socketPath, replacing a stale socket file.
func NewServer(socketPath string, d *Dispatcher) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		return nil, fmt.Errorf("create socket dir: %w", err)
	}

	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		dispatcher: d,
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Serve accepts connections until ctx is cancelled or Close is called.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				s.wg.Wait()
				return nil
			}
			debug.Logf("host: accept failed: %v", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(ctx, conn)
		}()
	}
}

// Close stops the listener and removes the socket file.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
	return nil
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	var raw json.RawMessage
	if err := json.NewDecoder(conn).Decode(&raw); err != nil {
		s.sendResponse(conn, Response{Error: "invalid JSON: " + err.Error()})
		return
	}

	s.sendResponse(conn, s.dispatcher.Handle(ctx, raw))
}

func (s *Server) sendResponse(conn net.Conn, resp Response) {
	encoder := json.NewEncoder(conn)
	_ = encoder.Encode(resp)
}
