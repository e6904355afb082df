// Package store defines the persistence contracts consumed by the access,
// event and alert services. Production code uses the gormstore
// implementations; tests use the memory ones.
package store

import (
	"context"
	"errors"
	"time"

	"hexa_access/internal/models"
)

var ErrNotFound = errors.New("record not found")

// DefaultLogLimit caps log queries that do not specify their own limit.
const DefaultLogLimit = 1000

type CharacterStore interface {
	// FindByRFID returns the character holding the given card, including
	// secret hashes.
	FindByRFID(ctx context.Context, code string) (*models.Character, error)
	FindByID(ctx context.Context, id int64) (*models.Character, error)
	List(ctx context.Context) ([]models.Character, error)
	Create(ctx context.Context, c *models.Character) error
	Update(ctx context.Context, c *models.Character) error
	Delete(ctx context.Context, id int64) error
	SetRegistered(ctx context.Context, id int64, registered bool) error
	// ResetAll unregisters every character and moves them to the invalid
	// (0,0) position sentinel.
	ResetAll(ctx context.Context) error
}

type LogStore interface {
	Insert(ctx context.Context, l *models.Log) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]models.Log, error)
	CountByTypeSince(ctx context.Context, t models.LogType, cutoff time.Time) (int64, error)
	DeleteAll(ctx context.Context) error
}

type AlertRuleStore interface {
	Active(ctx context.Context) ([]models.AlertRule, error)
	List(ctx context.Context) ([]models.AlertRule, error)
	Create(ctx context.Context, r *models.AlertRule) error
	Update(ctx context.Context, r *models.AlertRule) error
	Delete(ctx context.Context, id int64) error
	// SetLastTriggered records the debounce clock for one rule. Only the
	// alert engine calls this; concurrent writers are last-write-wins.
	SetLastTriggered(ctx context.Context, id int64, at time.Time) error
	// ReArmAll reactivates every rule and clears its debounce clock.
	ReArmAll(ctx context.Context) error
}
