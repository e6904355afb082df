package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

// Claims carries the authenticated operator's identity.
type Claims struct {
	CharacterID int64       `json:"cid"`
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
	jwt.RegisteredClaims
}

const TokenTTL = 24 * time.Hour

// NewToken issues a signed HS256 token for an authenticated operator.
func NewToken(secret string, char *models.Character) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		CharacterID: char.ID,
		Name:        char.Name,
		Role:        char.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString([]byte(secret))
}

// JWT returns a gin middleware that validates bearer tokens on
// administrative routes and verifies the operator still exists.
func JWT(characters store.CharacterStore, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("Authorization")
		if tokenStr == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenStr = "Bearer " + cookie
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		tokenStr = strings.TrimSpace(strings.TrimPrefix(tokenStr, "Bearer "))

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		if _, err := characters.FindByID(c.Request.Context(), claims.CharacterID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "operator not found"})
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}
