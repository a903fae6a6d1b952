package feed

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

// Client reads messages from a running feed.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to the feed at url, e.g. ws://127.0.0.1:7531/events.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial feed %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// URL builds the feed URL for a listen address.
func URL(addr string) string {
	return "ws://" + addr + Path
}

// Next blocks until the next message arrives.
func (c *Client) Next() (Message, error) {
	var msg Message
	if err := c.conn.ReadJSON(&msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
