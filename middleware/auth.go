package middleware

import (
	"errors"
	"net/http"
	"partnersync/models"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const callerKey = "caller"

var errMalformedClaims = errors.New("token claims are malformed")

// AuthRequired verifies an HS256 bearer token and stores the caller in the context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authorization header required"})
			c.Abort()
			return
		}

		caller, err := parseToken(token, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(callerKey, caller)

		c.Next()
	}
}

// Authorize rejects callers whose role is not in roles. It must run after AuthRequired.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authenticated"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "role " + caller.Role + " is not authorized to access this route",
		})
		c.Abort()
	}
}

// CallerFrom returns the caller stored by AuthRequired.
func CallerFrom(c *gin.Context) (models.Caller, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}

func extractToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

func parseToken(tokenStr, secret string) (models.Caller, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Caller{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Caller{}, errMalformedClaims
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return models.Caller{}, errMalformedClaims
	}

	role, _ := claims["role"].(string)
	switch role {
	case models.RolePublic, models.RolePartner, models.RoleGovernment, models.RoleAdmin:
	default:
		return models.Caller{}, errMalformedClaims
	}

	return models.Caller{UserID: userID, Role: role}, nil
}
