// Package memory provides in-memory store implementations for tests and
// development environments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

type CharacterStore struct {
	mu     sync.RWMutex
	byID   map[int64]models.Character
	nextID int64
}

func NewCharacterStore(seed ...models.Character) *CharacterStore {
	s := &CharacterStore{byID: make(map[int64]models.Character), nextID: 1}
	for _, c := range seed {
		cp := c
		if cp.ID == 0 {
			cp.ID = s.nextID
		}
		s.byID[cp.ID] = cp
		if cp.ID >= s.nextID {
			s.nextID = cp.ID + 1
		}
	}
	return s
}

func (s *CharacterStore) FindByRFID(_ context.Context, code string) (*models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.byID {
		if c.RFIDCode == code {
			cp := c
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *CharacterStore) FindByID(_ context.Context, id int64) (*models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (s *CharacterStore) List(_ context.Context) ([]models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Character, 0, len(s.byID))
	for id := int64(1); id < s.nextID; id++ {
		if c, ok := s.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CharacterStore) Create(_ context.Context, c *models.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.RFIDCode == c.RFIDCode {
			return fmt.Errorf("rfid code %q already assigned", c.RFIDCode)
		}
	}
	if c.ID == 0 {
		c.ID = s.nextID
	}
	if _, ok := s.byID[c.ID]; ok {
		return fmt.Errorf("character id %d already exists", c.ID)
	}
	if c.ID >= s.nextID {
		s.nextID = c.ID + 1
	}
	s.byID[c.ID] = *c
	return nil
}

func (s *CharacterStore) Update(_ context.Context, c *models.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[c.ID]; !ok {
		return store.ErrNotFound
	}
	s.byID[c.ID] = *c
	return nil
}

func (s *CharacterStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *CharacterStore) SetRegistered(_ context.Context, id int64, registered bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	c.IsRegistered = registered
	s.byID[id] = c
	return nil
}

func (s *CharacterStore) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.byID {
		c.IsRegistered = false
		c.PositionX, c.PositionY = 0, 0
		s.byID[id] = c
	}
	return nil
}
