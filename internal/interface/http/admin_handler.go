package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/petwell/petwell-api/internal/application"
	"github.com/petwell/petwell-api/internal/domain/entity"
	"github.com/petwell/petwell-api/pkg/response"
)

type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ListUsers GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list users failed")
		}
		response.Err(c, http.StatusInternalServerError, "DB error")
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	response.OK(c, out)
}

// DeleteUser DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Err(c, http.StatusNotFound, "User not found")
		return
	}
	switch err := h.Svc.DeleteUser(c.Request.Context(), id); {
	case err == nil:
		response.Success(c)
	case errors.Is(err, application.ErrUserNotFound):
		response.Err(c, http.StatusNotFound, "User not found")
	case errors.Is(err, application.ErrPrimaryAdmin):
		response.Err(c, http.StatusForbidden, "Cannot delete main admin")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", id).Error("delete user failed")
		}
		response.Err(c, http.StatusInternalServerError, "Delete failed")
	}
}

// UpdateRole PATCH /api/admin/users/:id/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Err(c, http.StatusNotFound, "User not found")
		return
	}
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, "Invalid role")
		return
	}
	switch err := h.Svc.UpdateRole(c.Request.Context(), id, entity.Role(req.Role)); {
	case err == nil:
		response.Success(c)
	case errors.Is(err, application.ErrInvalidRole):
		response.Err(c, http.StatusBadRequest, "Invalid role")
	case errors.Is(err, application.ErrUserNotFound):
		response.Err(c, http.StatusNotFound, "User not found")
	case errors.Is(err, application.ErrPrimaryAdmin):
		response.Err(c, http.StatusForbidden, "Cannot change main admin role")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", id).Error("update role failed")
		}
		response.Err(c, http.StatusInternalServerError, "Update failed")
	}
}

// SearchUsers GET /api/admin/users/search?q=
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("user search failed")
		}
		response.Err(c, http.StatusInternalServerError, "Search failed")
		return
	}
	response.OK(c, hits)
}
