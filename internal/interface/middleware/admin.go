package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petwell/petwell-api/internal/domain/entity"
	"github.com/petwell/petwell-api/pkg/response"
)

// RequireAdmin rejects any authenticated request whose token role is not
// admin. Must be registered after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRoleKey) != entity.RoleAdmin.String() {
			response.AbortErr(c, http.StatusForbidden, "Admin only")
			return
		}
		c.Next()
	}
}
