package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/domain"
)

// FS persists finished game records as JSON files, bucketed by client
// type under the base directory.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func bucketDir(clientType string) string {
	switch strings.TrimSpace(clientType) {
	case "human":
		return "human"
	case "computer":
		return "computer"
	default:
		return "other"
	}
}

func (s *FS) pathFor(rec *domain.GameRecord) string {
	return filepath.Join(s.dir, bucketDir(rec.ClientType), strings.TrimSpace(rec.ID)+".json")
}

func (s *FS) Save(ctx context.Context, rec *domain.GameRecord) error {
	if rec == nil || rec.ID == "" {
		return errors.New("invalid record: missing ID")
	}
	target := s.pathFor(rec)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func (s *FS) Load(ctx context.Context, id string) (*domain.GameRecord, error) {
	for _, bucket := range []string{"human", "computer", "other"} {
		path := filepath.Join(s.dir, bucket, id+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		var out domain.GameRecord
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

func (s *FS) List(ctx context.Context) ([]domain.GameRecord, error) {
	var out []domain.GameRecord
	for _, bucket := range []string{"human", "computer", "other"} {
		ents, err := os.ReadDir(filepath.Join(s.dir, bucket))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.dir, bucket, e.Name()))
			if err != nil {
				continue
			}
			var rec domain.GameRecord
			if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
				continue
			}
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}
