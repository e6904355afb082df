package memory

import (
	"context"
	"sync"
	"time"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

type AlertRuleStore struct {
	mu     sync.RWMutex
	byID   map[int64]models.AlertRule
	nextID int64
}

func NewAlertRuleStore(seed ...models.AlertRule) *AlertRuleStore {
	s := &AlertRuleStore{byID: make(map[int64]models.AlertRule), nextID: 1}
	for _, r := range seed {
		rp := r
		if rp.ID == 0 {
			rp.ID = s.nextID
		}
		s.byID[rp.ID] = rp
		if rp.ID >= s.nextID {
			s.nextID = rp.ID + 1
		}
	}
	return s
}

func (s *AlertRuleStore) Active(_ context.Context) ([]models.AlertRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.AlertRule
	for id := int64(1); id < s.nextID; id++ {
		if r, ok := s.byID[id]; ok && r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *AlertRuleStore) List(_ context.Context) ([]models.AlertRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.AlertRule
	for id := int64(1); id < s.nextID; id++ {
		if r, ok := s.byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *AlertRuleStore) Create(_ context.Context, r *models.AlertRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.nextID
	}
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
	s.byID[r.ID] = *r
	return nil
}

func (s *AlertRuleStore) Update(_ context.Context, r *models.AlertRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[r.ID]; !ok {
		return store.ErrNotFound
	}
	s.byID[r.ID] = *r
	return nil
}

func (s *AlertRuleStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *AlertRuleStore) SetLastTriggered(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	r.LastTriggered = &at
	s.byID[id] = r
	return nil
}

func (s *AlertRuleStore) ReArmAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.byID {
		r.Active = true
		r.LastTriggered = nil
		s.byID[id] = r
	}
	return nil
}

// Get returns a copy of one rule. Test-only helper.
func (s *AlertRuleStore) Get(id int64) (models.AlertRule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}
