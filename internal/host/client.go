package host

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Send delivers one message to the daemon at socket and returns its reply.
func Send(ctx context.Context, socket string, msg []byte) (Response, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socket)
	if err != nil {
		return Response{}, fmt.Errorf("connect to %s: %w", socket, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(connTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)

	payload := append(append([]byte(nil), msg...), '\n')
	if _, err := conn.Write(payload); err != nil {
		return Response{}, fmt.Errorf("send message: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	return resp, nil
}
