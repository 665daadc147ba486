package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()

	rec := &domain.GameRecord{
		ID:         "g-1",
		ClientType: "computer",
		Width:      4,
		Height:     4,
		Moves:      88,
		Seconds:    3.5,
		Solved:     true,
		CreatedAt:  100,
	}
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Load(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestSaveBucketsByClientType(t *testing.T) {
	dir := t.TempDir()
	s := NewFS(dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.GameRecord{ID: "h", ClientType: "human"}))
	require.NoError(t, s.Save(ctx, &domain.GameRecord{ID: "c", ClientType: "computer"}))
	require.NoError(t, s.Save(ctx, &domain.GameRecord{ID: "x", ClientType: "robot"}))

	for _, p := range []string{
		filepath.Join(dir, "human", "h.json"),
		filepath.Join(dir, "computer", "c.json"),
		filepath.Join(dir, "other", "x.json"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected record at %s: %v", p, err)
		}
	}
}

func TestSaveRejectsMissingID(t *testing.T) {
	s := NewFS(t.TempDir())
	assert.Error(t, s.Save(context.Background(), &domain.GameRecord{}))
	assert.Error(t, s.Save(context.Background(), nil))
}

func TestLoadUnknownID(t *testing.T) {
	s := NewFS(t.TempDir())
	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListSortedByCreation(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.GameRecord{ID: "b", ClientType: "human", CreatedAt: 20}))
	require.NoError(t, s.Save(ctx, &domain.GameRecord{ID: "a", ClientType: "computer", CreatedAt: 10}))
	require.NoError(t, s.Save(ctx, &domain.GameRecord{ID: "c", ClientType: "human", CreatedAt: 30}))

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{recs[0].ID, recs[1].ID, recs[2].ID})
}

func TestListEmptyDir(t *testing.T) {
	recs, err := NewFS(t.TempDir()).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}
