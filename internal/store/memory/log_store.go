package memory

import (
	"context"
	"sync"
	"time"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

// LogStore is an in-memory append-only audit log. IDs are assigned
// monotonically on insert, matching the production auto-increment.
type LogStore struct {
	mu     sync.Mutex
	logs   []models.Log
	nextID int64
}

func NewLogStore() *LogStore {
	return &LogStore{nextID: 1}
}

func (s *LogStore) Insert(_ context.Context, l *models.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	if l.ID == 0 {
		l.ID = s.nextID
	}
	if l.ID >= s.nextID {
		s.nextID = l.ID + 1
	}
	s.logs = append(s.logs, *l)
	return nil
}

func (s *LogStore) Recent(_ context.Context, limit int) ([]models.Log, error) {
	if limit <= 0 || limit > store.DefaultLogLimit {
		limit = store.DefaultLogLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Log, 0, limit)
	for i := len(s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.logs[i])
	}
	return out, nil
}

func (s *LogStore) CountByTypeSince(_ context.Context, t models.LogType, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, l := range s.logs {
		if l.Type == t && !l.Timestamp.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (s *LogStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = nil
	return nil
}

// All returns a copy of every entry in insert order. Test-only helper.
func (s *LogStore) All() []models.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Log, len(s.logs))
	copy(out, s.logs)
	return out
}
