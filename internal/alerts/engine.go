// Package alerts evaluates appended audit entries against the configured
// alert rules and dispatches notifications for the ones that trigger.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

// CoolOff is the minimum interval between two triggers of the same rule.
// It is a best-effort throttle: concurrent evaluations may race on
// LastTriggered and both fire, which is accepted over serializing
// unrelated rules behind a lock.
const CoolOff = 60 * time.Second

// Dispatcher delivers a formatted alert to the notification channel.
type Dispatcher interface {
	Send(subject, body string) error
}

type Engine struct {
	rules      store.AlertRuleStore
	logs       store.LogStore
	characters store.CharacterStore
	dispatch   Dispatcher
	logger     *log.Logger
	now        func() time.Time
}

func NewEngine(rules store.AlertRuleStore, logs store.LogStore, characters store.CharacterStore, dispatch Dispatcher, logger *log.Logger) *Engine {
	return &Engine{
		rules:      rules,
		logs:       logs,
		characters: characters,
		dispatch:   dispatch,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock overrides the engine's time source. Used by tests to step the
// debounce window.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Evaluate runs every active rule against one appended entry. Failures are
// contained: a broken rule is logged and the rest still evaluate, and
// nothing propagates back to the append path.
func (e *Engine) Evaluate(ctx context.Context, entry models.Log) {
	rules, err := e.rules.Active(ctx)
	if err != nil {
		e.logger.Printf("alerts: fetch active rules: %v", err)
		return
	}

	now := e.now().UTC()
	for _, rule := range rules {
		if rule.LastTriggered != nil && now.Sub(*rule.LastTriggered) < CoolOff {
			continue
		}

		triggered, err := e.matches(ctx, rule, entry, now)
		if err != nil {
			e.logger.Printf("alerts: rule %q (%d): %v", rule.Name, rule.ID, err)
			continue
		}
		if !triggered {
			continue
		}

		e.logger.Printf("alerts: rule %q triggered by log %d", rule.Name, entry.ID)
		e.notify(ctx, rule, entry)

		// Debounce clock starts at decision time, not delivery time, and
		// is written even if dispatch later fails.
		if err := e.rules.SetLastTriggered(ctx, rule.ID, now); err != nil {
			e.logger.Printf("alerts: mark rule %d triggered: %v", rule.ID, err)
		}
	}
}

func (e *Engine) matches(ctx context.Context, rule models.AlertRule, entry models.Log, now time.Time) (bool, error) {
	switch rule.Type {
	case models.AlertErrorRate:
		if entry.Type != models.LogError || rule.Threshold <= 0 || rule.IntervalSeconds <= 0 {
			return false, nil
		}
		cutoff := now.Add(-time.Duration(rule.IntervalSeconds) * time.Second)
		count, err := e.logs.CountByTypeSince(ctx, models.LogError, cutoff)
		if err != nil {
			return false, fmt.Errorf("count recent errors: %w", err)
		}
		return count >= int64(rule.Threshold), nil

	case models.AlertUnauthorizedAccess:
		return entry.Type == models.LogAccessDenied, nil

	case models.AlertKeywordMatch:
		if rule.Keyword == "" {
			return false, nil
		}
		return strings.Contains(strings.ToLower(entry.Text), strings.ToLower(rule.Keyword)), nil
	}
	return false, nil
}

// notify formats the alert and hands it to the dispatcher without waiting
// for delivery. Dispatch failures are logged, never retried.
func (e *Engine) notify(ctx context.Context, rule models.AlertRule, entry models.Log) {
	who := "System Generated"
	if entry.UserID != nil {
		char, err := e.characters.FindByID(ctx, *entry.UserID)
		switch {
		case err == nil:
			who = fmt.Sprintf("Name: %s\nRole: %s\nRFID: %s", char.Name, char.Role, char.RFIDCode)
		case !errors.Is(err, store.ErrNotFound):
			e.logger.Printf("alerts: resolve character %d: %v", *entry.UserID, err)
		}
	}

	when := entry.Timestamp
	if when.IsZero() {
		when = e.now()
	}

	subject := fmt.Sprintf("Security Alert: %s", rule.Name)
	body := fmt.Sprintf(`--------------------------------------------------
SECURITY ALERT: %s
--------------------------------------------------

WHAT HAPPENED:
%s

WHO:
%s

WHEN:
%s

--------------------------------------------------
Hexa Access Control System
`, strings.ToUpper(rule.Name), entry.Text, who, when.Local().Format("Jan 2, 2006 3:04:05 PM MST"))

	go func() {
		if err := e.dispatch.Send(subject, body); err != nil {
			e.logger.Printf("alerts: dispatch for rule %q failed: %v", rule.Name, err)
		}
	}()
}
