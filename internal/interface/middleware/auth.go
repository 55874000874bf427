package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petwell/petwell-api/pkg/helpers"
	"github.com/petwell/petwell-api/pkg/response"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxClaimsKey = "claims"
	CtxUserIDKey = "userID"
	CtxEmailKey  = "userEmail"
	CtxRoleKey   = "userRole"
)

// Auth requires a bearer token in the Authorization header, validates it, and
// binds the verified claims to the request context. Authentication always runs
// before any role check: a request with a bad token never reaches
// RequireAdmin, whatever role the token claims.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortErr(c, http.StatusUnauthorized, "No token")
			return
		}
		token := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxEmailKey, claims.Email)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated user id bound by Auth.
func UserID(c *gin.Context) int64 {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
