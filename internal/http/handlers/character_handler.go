package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

// minSecretLength is the shortest PIN or password accepted at
// provisioning time.
const minSecretLength = 4

func ListCharacters(characters store.CharacterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		chars, err := characters.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, chars)
	}
}

type createCharacterInput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	RFIDCode string `json:"rfidCode"`
	Avatar   string `json:"avatar"`
	Pin      string `json:"pin"`
	Password string `json:"password"`
}

func CreateCharacter(characters store.CharacterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input createCharacterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if input.Name == "" || input.Role == "" || input.RFIDCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, Role, and RFID Code are required."})
			return
		}
		role := models.Role(input.Role)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown role: " + input.Role})
			return
		}

		if _, err := characters.FindByRFID(c.Request.Context(), input.RFIDCode); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error: RFID Code already assigned to another user."})
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		char := models.Character{
			ID:            input.ID,
			Name:          input.Name,
			Role:          role,
			RFIDCode:      input.RFIDCode,
			Avatar:        input.Avatar,
			LastKnownZone: "Unknown",
		}

		if len(input.Pin) >= minSecretLength {
			hash, err := bcrypt.GenerateFromPassword([]byte(input.Pin), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			char.PinHash = string(hash)
		}
		if len(input.Password) >= minSecretLength {
			hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			char.PasswordHash = string(hash)
		}

		if err := characters.Create(c.Request.Context(), &char); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, char)
	}
}

type updateCharacterInput struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	RFIDCode *string `json:"rfidCode"`
	Avatar   *string `json:"avatar"`
	Pin      *string `json:"pin"`
	Password *string `json:"password"`
}

func UpdateCharacter(characters store.CharacterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid character id"})
			return
		}

		var input updateCharacterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		char, err := characters.FindByID(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Character not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		if input.Name != nil {
			char.Name = *input.Name
		}
		if input.Role != nil {
			role := models.Role(*input.Role)
			if !role.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown role: " + *input.Role})
				return
			}
			char.Role = role
		}
		if input.RFIDCode != nil {
			char.RFIDCode = *input.RFIDCode
		}
		if input.Avatar != nil {
			char.Avatar = *input.Avatar
		}
		if input.Pin != nil && len(*input.Pin) >= minSecretLength {
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.Pin), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			char.PinHash = string(hash)
		}
		if input.Password != nil && len(*input.Password) >= minSecretLength {
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
			char.PasswordHash = string(hash)
		}

		if err := characters.Update(c.Request.Context(), char); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, char)
	}
}

type positionInput struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zone string  `json:"zone"`
}

// UpdatePosition syncs a character's last known position and zone.
func UpdatePosition(characters store.CharacterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid character id"})
			return
		}

		var input positionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		char, err := characters.FindByID(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Character not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		char.PositionX = input.X
		char.PositionY = input.Y
		if input.Zone != "" {
			char.LastKnownZone = input.Zone
		}

		if err := characters.Update(c.Request.Context(), char); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, char)
	}
}

func DeleteCharacter(characters store.CharacterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid character id"})
			return
		}

		char, err := characters.FindByID(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Character not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		// Only the explicit flag protects default personnel.
		if char.IsSystem {
			c.JSON(http.StatusForbidden, gin.H{"message": "Cannot delete default system personnel."})
			return
		}

		if err := characters.Delete(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Character deleted"})
	}
}
