package hub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

// Client is the game-side end of the sideband. When the hub is
// unreachable, or the connection drops mid-session, it degrades to the
// local logger instead of blocking play.
type Client struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	source    string
	local     *slog.Logger
}

// Dial connects to the hub and announces the client type. A failed dial
// returns a disconnected client that logs locally, plus the error for
// the caller to report.
func Dial(ctx context.Context, url, clientType, source string, local *slog.Logger) (*Client, error) {
	if local == nil {
		local = slog.Default()
	}
	c := &Client{source: source, local: local}

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		local.Error("failed to connect to hub", "url", url, "err", err)
		return c, err
	}
	c.conn = conn
	c.connected = true
	if err := c.send(Message{Type: TypeConnect, ClientType: clientType}); err != nil {
		return c, err
	}
	local.Info("hub connected", "url", url, "client_type", clientType)
	return c, nil
}

// Connected reports whether the sideband is still up.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// SendLog ships one leveled log line to the hub, or logs it locally
// when disconnected.
func (c *Client) SendLog(level, text string) {
	msg := Message{
		Type:      TypeLog,
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level,
		Text:      text,
		Source:    c.source,
	}
	if err := c.send(msg); err != nil {
		c.local.Log(context.Background(), localLevel(level), text)
	}
}

// Record implements ports.StatsSink. Delivery is best effort; a dropped
// record is logged, never an error for the game.
func (c *Client) Record(ctx context.Context, rec domain.GameRecord) error {
	msg := Message{
		Type:    TypeStats,
		Rows:    rec.Height,
		Cols:    rec.Width,
		Moves:   rec.Moves,
		Seconds: rec.Seconds,
		Solved:  rec.Solved,
	}
	if err := c.send(msg); err != nil {
		c.local.Error("stats not delivered to hub", "err", err)
	}
	return nil
}

// Close says goodbye and tears the connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	_ = c.conn.WriteJSON(Message{Type: TypeDisconnect})
	c.connected = false
	return c.conn.Close()
}

func (c *Client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return fmt.Errorf("hub client disconnected")
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		c.connected = false
		c.conn.Close()
		c.local.Error("hub connection lost", "err", err)
		return err
	}
	return nil
}

func localLevel(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}
