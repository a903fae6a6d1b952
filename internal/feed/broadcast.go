package feed

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/alexander-akhmetov/chime/internal/debug"
	"github.com/alexander-akhmetov/chime/internal/event"
	"github.com/alexander-akhmetov/chime/internal/session"
)

// sendBuffer is the per-client queue length before the client is dropped.
const sendBuffer = 64

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Broadcaster fans observed events out to every connected viewer. Publish
// never blocks: a viewer that cannot keep up is disconnected.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[*client]bool
	closed  bool
	state   func() session.State

	upgrader websocket.Upgrader
}

// NewBroadcaster creates a broadcaster. state supplies the counts sent on
// connect and after each event.
func NewBroadcaster(state func() session.State) *Broadcaster {
	return &Broadcaster{
		clients: make(map[*client]bool),
		state:   state,
		upgrader: websocket.Upgrader{
			// The feed only listens on loopback by default and carries no secrets.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and keeps the viewer registered until it
// disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Logf("feed: upgrade failed: %v", err)
		return
	}

	c := b.addClient(conn)
	if c == nil {
		debug.Logf("feed: closed, rejecting viewer")
		return
	}
	defer b.removeClient(c)

	// Viewers never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Handler returns a mux serving the feed at Path.
func (b *Broadcaster) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, b)
	return mux
}

// Publish sends ev and the resulting state to every viewer. It has the
// event.Handler signature so it can be passed to engine.Subscribe.
func (b *Broadcaster) Publish(ev event.Event) {
	b.broadcast(eventMessage(ev))
	b.broadcast(stateMessage(b.state()))
}

// ClientCount returns the number of connected viewers.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every viewer. Viewers connecting afterwards are
// rejected.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for c := range b.clients {
		delete(b.clients, c)
		close(c.send)
	}
}

// addClient registers conn, or closes it and returns nil once the
// broadcaster is closed.
func (b *Broadcaster) addClient(conn *websocket.Conn) *client {
	data, err := json.Marshal(stateMessage(b.state()))

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		conn.Close()
		return nil
	}
	c := newClient(conn)
	b.clients[c] = true
	if err == nil {
		c.send <- data // fresh buffer, cannot block
	}
	return c
}

func (b *Broadcaster) removeClient(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
}

func (b *Broadcaster) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		debug.Logf("feed: marshal error: %v", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			debug.Logf("feed: viewer too slow, disconnecting")
			delete(b.clients, c)
			close(c.send)
		}
	}
}
