package hub

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHandlerMirrorsToLocal(t *testing.T) {
	var buf bytes.Buffer
	local := slog.New(slog.NewTextHandler(io.Discard, nil))

	// A disconnected client falls back to its local logger, which here
	// writes into the buffer we inspect.
	c := &Client{source: "test", local: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	log := slog.New(NewLogHandler(c, local.Handler()))

	log.Info("solver started", "width", 4)
	out := buf.String()
	assert.Contains(t, out, "solver started")
	assert.Contains(t, out, "width=4")
}

func TestLogHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	c := &Client{source: "test", local: slog.New(slog.NewTextHandler(&buf, nil))}
	base := slog.New(NewLogHandler(c, slog.NewTextHandler(io.Discard, nil)))

	base.With("game", "g-1").Info("move applied", "n", 3)
	out := buf.String()
	assert.Contains(t, out, "game=g-1")
	assert.Contains(t, out, "n=3")
}

func TestWireLevel(t *testing.T) {
	cases := map[slog.Level]string{
		slog.LevelDebug: "DEBUG",
		slog.LevelInfo:  "INFO",
		slog.LevelWarn:  "WARN",
		slog.LevelError: "ERROR",
	}
	for level, want := range cases {
		assert.Equal(t, want, wireLevel(level))
	}
}

func TestLogHandlerReachesHub(t *testing.T) {
	_, url := newTestHub(t)
	local := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := Dial(context.Background(), url, "computer", "test", local)
	require.NoError(t, err)
	defer c.Close()

	log := slog.New(NewLogHandler(c, local.Handler()))
	log.Info("hello hub")

	// The hub only logs these lines; a still-healthy connection after
	// the send is the contract under test.
	require.True(t, c.Connected())
}
