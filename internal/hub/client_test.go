package hub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

func TestClientDialRecordAndClose(t *testing.T) {
	h, url := newTestHub(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := Dial(context.Background(), url, "computer", "npuzzle-test", log)
	require.NoError(t, err)
	require.True(t, c.Connected())

	c.SendLog("INFO", "solver started")
	require.NoError(t, c.Record(context.Background(), domain.GameRecord{
		Width: 4, Height: 4, Moves: 80, Seconds: 3.25, Solved: true,
	}))

	assert.Eventually(t, func() bool {
		snap := h.Snapshot()
		return len(snap) == 1 && snap[0].ClientType == "computer" && snap[0].Games == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, c.Close())
	assert.False(t, c.Connected())
	assert.NoError(t, c.Close(), "closing twice is harmless")
}

func TestClientDialFailureDegradesLocally(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Nothing listens here; the dial must fail fast and leave a usable
	// local-only client behind.
	c, err := Dial(context.Background(), "ws://127.0.0.1:1/ws", "human", "npuzzle-test", log)
	require.Error(t, err)
	require.NotNil(t, c)
	assert.False(t, c.Connected())

	c.SendLog("ERROR", "this goes to the local logger")
	assert.NoError(t, c.Record(context.Background(), domain.GameRecord{Moves: 1, Solved: true}))
	assert.NoError(t, c.Close())
}
