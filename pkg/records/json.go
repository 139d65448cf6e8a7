package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

// JSONStore keeps one collection in a JSON object file mapping ids to
// records. Every change rewrites the file atomically.
type JSONStore struct {
	mu         sync.Mutex
	path       string
	collection string
}

// OpenJSON returns a store backed by the file at path. The file is created
// on the first write.
func OpenJSON(path, collection string) *JSONStore {
	return &JSONStore{path: path, collection: collection}
}

func (s *JSONStore) load() (map[string]teacherdoc.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]teacherdoc.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	recs := map[string]teacherdoc.Record{}
	if len(bytes.TrimSpace(data)) == 0 {
		return recs, nil
	}
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return recs, nil
}

func (s *JSONStore) save(recs map[string]teacherdoc.Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.collection, err)
	}
	if err := atomic.WriteFile(s.path, &buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONStore) Get(ctx context.Context, id string) (teacherdoc.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	rec, ok := recs[id]
	if !ok {
		return nil, &NotFoundError{Collection: s.collection, ID: id}
	}
	return rec, nil
}

func (s *JSONStore) Add(ctx context.Context, rec teacherdoc.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load()
	if err != nil {
		return "", err
	}
	next := 1
	for id := range recs {
		if n, err := strconv.Atoi(id); err == nil && n >= next {
			next = n + 1
		}
	}
	id := strconv.Itoa(next)
	recs[id] = rec
	if err := s.save(recs); err != nil {
		return "", err
	}
	return id, nil
}

func (s *JSONStore) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(recs))
	for id, rec := range recs {
		entries = append(entries, Entry{ID: id, Record: rec})
	}
	sortEntries(entries)
	return entries, nil
}

func (s *JSONStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to reset %s: %w", s.collection, err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}
