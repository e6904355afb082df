// Package events owns the append-only audit trail and fans appended
// entries out to the alert engine.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

// Evaluator receives every appended entry. Evaluation runs in the
// background with its own error boundary; it can never fail an append.
type Evaluator interface {
	Evaluate(ctx context.Context, entry models.Log)
}

const defaultEvalTimeout = 15 * time.Second

type Recorder struct {
	logs        store.LogStore
	evaluator   Evaluator
	logger      *log.Logger
	evalTimeout time.Duration
}

func NewRecorder(logs store.LogStore, evaluator Evaluator, logger *log.Logger) *Recorder {
	return &Recorder{
		logs:        logs,
		evaluator:   evaluator,
		logger:      logger,
		evalTimeout: defaultEvalTimeout,
	}
}

// Append persists one audit entry and triggers alert evaluation in the
// background. The returned entry carries the assigned id and timestamp.
func (r *Recorder) Append(ctx context.Context, text string, typ models.LogType, metadata map[string]any, userID *int64) (models.Log, error) {
	entry := models.Log{
		Text:      text,
		Type:      typ,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}

	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return models.Log{}, fmt.Errorf("marshal log metadata: %w", err)
		}
		entry.Metadata = datatypes.JSON(raw)
	}

	if err := r.logs.Insert(ctx, &entry); err != nil {
		return models.Log{}, fmt.Errorf("insert log: %w", err)
	}

	r.triggerEvaluation(entry)
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.Log, error) {
	return r.logs.Recent(ctx, limit)
}

// triggerEvaluation hands the entry to the alert engine without blocking
// the caller. The goroutine gets its own bounded context so evaluation
// survives the request that produced the entry, and a recover boundary so
// a panicking rule can never take the process down.
func (r *Recorder) triggerEvaluation(entry models.Log) {
	if r.evaluator == nil {
		return
	}
	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.logger.Printf("alert evaluation panic for log %d: %v", entry.ID, p)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), r.evalTimeout)
		defer cancel()
		r.evaluator.Evaluate(ctx, entry)
	}()
}
