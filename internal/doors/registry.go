// Package doors holds the static door configuration. Door layout is an
// administrative concern; at runtime this registry is read-only.
package doors

import "hexa_access/internal/models"

type AuthType string

const (
	AuthNone     AuthType = "none"
	AuthPassword AuthType = "password"
	AuthPin      AuthType = "pin"
)

type Door struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	RequiredRoles []models.Role `json:"requiredRoles"`
	AuthType      AuthType      `json:"authType"`
	// IsRegistrationPoint marks entrance doors where a first successful
	// access also completes the holder's registration.
	IsRegistrationPoint bool `json:"isRegistrationPoint"`
}

func (d Door) Allows(role models.Role) bool {
	for _, r := range d.RequiredRoles {
		if r == role {
			return true
		}
	}
	return false
}

var registry = map[int64]Door{
	1: {
		ID:                  1,
		Name:                "Main Entrance",
		RequiredRoles:       models.Roles(),
		AuthType:            AuthPassword,
		IsRegistrationPoint: true,
	},
	2: {
		ID:            2,
		Name:          "Staff Lounge",
		RequiredRoles: []models.Role{models.RoleStaff, models.RoleAdmin, models.RoleEngineer, models.RoleSecurity},
		AuthType:      AuthNone,
	},
	3: {
		ID:            3,
		Name:          "Security Office",
		RequiredRoles: []models.Role{models.RoleSecurity, models.RoleAdmin, models.RoleEngineer},
		AuthType:      AuthPin,
	},
	4: {
		ID:            4,
		Name:          "Engineering Bay",
		RequiredRoles: []models.Role{models.RoleEngineer, models.RoleAdmin, models.RoleSecurity},
		AuthType:      AuthNone,
	},
	5: {
		ID:            5,
		Name:          "Server Room",
		RequiredRoles: []models.Role{models.RoleEngineer, models.RoleAdmin, models.RoleSecurity},
		AuthType:      AuthPin,
	},
	6: {
		ID:            6,
		Name:          "Secure Link",
		RequiredRoles: []models.Role{models.RoleEngineer, models.RoleAdmin, models.RoleSecurity},
		AuthType:      AuthPin,
	},
}

// Find returns the door with the given id.
func Find(id int64) (Door, bool) {
	d, ok := registry[id]
	return d, ok
}

// All returns every configured door ordered by id.
func All() []Door {
	out := make([]Door, 0, len(registry))
	for id := int64(1); id <= int64(len(registry)); id++ {
		if d, ok := registry[id]; ok {
			out = append(out, d)
		}
	}
	return out
}
