package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hexa_access/internal/models"
)

type defaultCharacter struct {
	ID       int64
	Name     string
	Role     models.Role
	RFIDCode string
	Avatar   string
}

var defaultCharacters = []defaultCharacter{
	{ID: 1, Name: "Salman Miya", Role: models.RoleAdmin, RFIDCode: "D4 C6 4D 08", Avatar: "https://randomuser.me/api/portraits/men/32.jpg"},
	{ID: 2, Name: "Jia Li", Role: models.RoleEngineer, RFIDCode: "E6 FF C9 03", Avatar: "https://randomuser.me/api/portraits/women/44.jpg"},
	{ID: 3, Name: "Ben Carter", Role: models.RoleStaff, RFIDCode: "54 08 EA 04", Avatar: "https://randomuser.me/api/portraits/men/85.jpg"},
	{ID: 4, Name: "Elena Petrova", Role: models.RoleSecurity, RFIDCode: "BA D5 25 B3", Avatar: "https://randomuser.me/api/portraits/women/65.jpg"},
	{ID: 5, Name: "Guest User", Role: models.RoleVisitor, RFIDCode: "9C 91 CF 33", Avatar: "https://randomuser.me/api/portraits/lego/1.jpg"},
}

var defaultRules = []models.AlertRule{
	{ID: 998, Name: "Fire Alarm Trigger", Type: models.AlertKeywordMatch, Keyword: "FIRE ALARM", Action: "notify", Active: true},
	{ID: 999, Name: "Unauthorized Access", Type: models.AlertUnauthorizedAccess, Action: "notify", Active: true},
}

// FirstSetup seeds the default system personnel and alert rules.
// Idempotent: existing records keep their credentials and state.
func FirstSetup(db *gorm.DB, defaultPin, defaultPassword string) error {
	pinHash, err := bcrypt.GenerateFromPassword([]byte(defaultPin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	passHash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, dc := range defaultCharacters {
		char := models.Character{
			ID:            dc.ID,
			Name:          dc.Name,
			Role:          dc.Role,
			RFIDCode:      dc.RFIDCode,
			Avatar:        dc.Avatar,
			IsSystem:      true,
			LastKnownZone: "Unknown",
			PinHash:       string(pinHash),
			PasswordHash:  string(passHash),
		}
		if err := db.Where("id = ?", dc.ID).FirstOrCreate(&char).Error; err != nil {
			return err
		}

		// Older rows may predate the system flag or second factors.
		updates := map[string]any{"is_system": true}
		if char.PinHash == "" {
			updates["pin_hash"] = string(pinHash)
		}
		if char.PasswordHash == "" {
			updates["password_hash"] = string(passHash)
		}
		if err := db.Model(&models.Character{}).Where("id = ?", dc.ID).Updates(updates).Error; err != nil {
			return err
		}
	}

	for _, dr := range defaultRules {
		rule := dr
		if err := db.Where("name = ?", dr.Name).FirstOrCreate(&rule).Error; err != nil {
			return err
		}
	}

	log.Printf("Seed OK | characters=%d | rules=%d", len(defaultCharacters), len(defaultRules))
	return nil
}
