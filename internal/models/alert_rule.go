package models

import "time"

type AlertRuleType string

const (
	AlertErrorRate          AlertRuleType = "error_rate"
	AlertUnauthorizedAccess AlertRuleType = "unauthorized_access"
	AlertKeywordMatch       AlertRuleType = "keyword_match"
)

func (t AlertRuleType) Valid() bool {
	switch t {
	case AlertErrorRate, AlertUnauthorizedAccess, AlertKeywordMatch:
		return true
	}
	return false
}

// AlertRule is a configured condition over the event stream. LastTriggered
// is written exclusively by the alert engine; duplicates with the same
// semantic purpose may exist and each evaluates independently.
type AlertRule struct {
	ID              int64         `gorm:"primaryKey" json:"id"`
	Name            string        `gorm:"size:200;not null" json:"name"`
	Type            AlertRuleType `gorm:"size:32;not null" json:"type"`
	Threshold       int           `json:"threshold,omitempty"`
	IntervalSeconds int           `gorm:"column:interval_seconds" json:"interval,omitempty"`
	Keyword         string        `gorm:"size:200" json:"keyword,omitempty"`
	Action          string        `gorm:"size:32;default:notify" json:"action"`
	Active          bool          `gorm:"default:true" json:"active"`
	LastTriggered   *time.Time    `json:"lastTriggered,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
