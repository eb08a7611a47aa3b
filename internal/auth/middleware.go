package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

const memberContextKey contextKey = "authenticatedMember"

// ContextMember represents the authenticated principal stored in the request context.
type ContextMember struct {
	ID      string
	Email   string
	IsAdmin bool
}

// Middleware validates bearer tokens and injects the authenticated member.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := service.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(string(memberContextKey), ContextMember{
			ID:      claims.MemberID.String(),
			Email:   claims.Email,
			IsAdmin: claims.IsAdmin,
		})

		c.Next()
	}
}

// RequireAdmin aborts requests from non-admin members. Mount after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := CurrentMember(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !member.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentMember extracts the authenticated member from the context.
func CurrentMember(c *gin.Context) (ContextMember, bool) {
	value, exists := c.Get(string(memberContextKey))
	if !exists {
		return ContextMember{}, false
	}
	member, ok := value.(ContextMember)
	return member, ok
}

// RequireMember fetches the authenticated member and parses the identifier.
func RequireMember(c *gin.Context) (uuid.UUID, ContextMember, bool) {
	member, ok := CurrentMember(c)
	if !ok {
		return uuid.Nil, ContextMember{}, false
	}
	id, err := uuid.Parse(member.ID)
	if err != nil {
		return uuid.Nil, ContextMember{}, false
	}
	return id, member, true
}

func extractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
