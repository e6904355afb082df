package models

import "time"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEngineer Role = "Engineer"
	RoleStaff    Role = "Staff"
	RoleSecurity Role = "Security"
	RoleVisitor  Role = "Visitor"
)

// Roles lists every valid role, in the order the admin UI presents them.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEngineer, RoleStaff, RoleSecurity, RoleVisitor}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEngineer, RoleStaff, RoleSecurity, RoleVisitor:
		return true
	}
	return false
}

// Character is a credential holder: a person with an RFID card and
// optional PIN/password second factors. The hashes are never serialized.
type Character struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:200;not null" json:"name"`
	Role         Role   `gorm:"size:32;not null" json:"role"`
	RFIDCode     string `gorm:"column:rfid_code;uniqueIndex;size:64;not null" json:"rfidCode"`
	Avatar       string `gorm:"size:255" json:"avatar,omitempty"`
	PinHash      string `gorm:"size:255" json:"-"`
	PasswordHash string `gorm:"size:255" json:"-"`

	IsRegistered bool `gorm:"default:false" json:"isRegistered"`
	// IsSystem marks default personnel that must never be deleted.
	IsSystem bool `gorm:"default:false" json:"isSystem"`

	LastKnownZone string  `gorm:"size:100;default:Unknown" json:"lastKnownZone"`
	PositionX     float64 `gorm:"default:0" json:"positionX"`
	PositionY     float64 `gorm:"default:0" json:"positionY"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the non-sensitive projection returned with challenge
// responses and grants.
type CharacterSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (c *Character) Summary() CharacterSummary {
	return CharacterSummary{ID: c.ID, Name: c.Name, Role: c.Role}
}
