package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/petwell/petwell-api/internal/interface/http"
	"github.com/petwell/petwell-api/internal/interface/middleware"
	"github.com/petwell/petwell-api/pkg/helpers"
)

// AdminModule wires the admin user-management endpoints.
// All routes require a valid bearer token AND the admin role, in that order:
// authentication always runs before authorization.
type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/search", m.Handler.SearchUsers)
		admin.DELETE("/users/:id", m.Handler.DeleteUser)
		admin.PATCH("/users/:id/role", m.Handler.UpdateRole)
	}
}
