package models

import (
	"time"

	"gorm.io/datatypes"
)

type LogType string

const (
	LogInfo          LogType = "info"
	LogSuccess       LogType = "success"
	LogError         LogType = "error"
	LogWarning       LogType = "warning"
	LogAccessGranted LogType = "access_granted"
	LogAccessDenied  LogType = "access_denied"
	LogSystemAlert   LogType = "system_alert"
)

func (t LogType) Valid() bool {
	switch t {
	case LogInfo, LogSuccess, LogError, LogWarning,
		LogAccessGranted, LogAccessDenied, LogSystemAlert:
		return true
	}
	return false
}

// Log is one immutable entry in the append-only audit trail. IDs are
// auto-incremented by the store, so id order is time order.
type Log struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"index;not null" json:"timestamp"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Type      LogType        `gorm:"size:32;index;not null" json:"type"`
	UserID    *int64         `gorm:"index" json:"user,omitempty"` // nullable, system events have none
	Metadata  datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"`
}
