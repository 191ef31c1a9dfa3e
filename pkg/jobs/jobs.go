package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Job is a stored job profile. Required skills are derived from the
// description at analysis time, against the live taxonomy snapshot.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a job id has no stored profile.
var ErrNotFound = errors.New("job not found")

// Store keeps job profiles in memory and mirrors them to a JSON file so the
// catalog survives restarts. Writes are serialized; reads return copies.
type Store struct {
	mu    sync.RWMutex
	path  string
	items []Job
}

// NewStore opens the store at path, loading existing jobs if the file exists.
// An empty path keeps the store purely in-memory.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read jobs file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("parse jobs file %s: %w", path, err)
	}
	return s, nil
}

// Add stores a new job profile and persists the catalog.
func (s *Store) Add(title, description string) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		title = fmt.Sprintf("Job %d", len(s.items)+1)
	}
	j := Job{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	s.items = append(s.items, j)
	if err := s.persistLocked(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return Job{}, err
	}
	return j, nil
}

// List returns all stored jobs in insertion order.
func (s *Store) List() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Job, len(s.items))
	copy(out, s.items)
	return out
}

// Get looks a job up by id.
func (s *Store) Get(id uuid.UUID) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, j := range s.items {
		if j.ID == id {
			return j, nil
		}
	}
	return Job{}, ErrNotFound
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prepare jobs dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write jobs file: %w", err)
	}
	return nil
}
