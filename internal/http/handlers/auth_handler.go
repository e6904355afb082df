package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"hexa_access/internal/auth"
	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

type loginInput struct {
	RFIDCode string `json:"rfidCode" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an operator (Admin or Security role) with their
// card's password and issues a JWT for the administrative routes.
func Login(characters store.CharacterStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		char, err := characters.FindByRFID(c.Request.Context(), input.RFIDCode)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if char.Role != models.RoleAdmin && char.Role != models.RoleSecurity {
			c.JSON(http.StatusForbidden, gin.H{"error": "operator access requires Admin or Security role"})
			return
		}

		if char.PasswordHash == "" ||
			bcrypt.CompareHashAndPassword([]byte(char.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := auth.NewToken(jwtSecret, char)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
			return
		}

		c.SetCookie("token", token, int(auth.TokenTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":   char.ID,
				"name": char.Name,
				"role": char.Role,
			},
		})
	}
}
