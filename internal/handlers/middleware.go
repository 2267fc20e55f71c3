package handlers

import (
	"net/http"
	"strings"

	"github.com/ankirsydii/Orderly/internal/models"
	"github.com/ankirsydii/Orderly/internal/redis"

	"github.com/gin-gonic/gin"
)

const (
	sessionContextKey = "session"
	tokenContextKey   = "session_token"
)

// SessionReader resolves a bearer token to the identity behind it.
type SessionReader interface {
	GetSession(token string) (*redis.SessionData, error)
}

func AuthRequired(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		session, err := sessions.GetSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or invalid"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Set(tokenContextKey, token)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := CurrentSession(c)
		if session == nil || session.Role != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func CurrentSession(c *gin.Context) *redis.SessionData {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := value.(*redis.SessionData)
	return session
}

func currentToken(c *gin.Context) string {
	value, ok := c.Get(tokenContextKey)
	if !ok {
		return ""
	}
	token, _ := value.(string)
	return token
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
