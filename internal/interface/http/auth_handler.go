package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/petwell/petwell-api/internal/application"
	"github.com/petwell/petwell-api/internal/domain/entity"
	"github.com/petwell/petwell-api/pkg/response"
	"github.com/petwell/petwell-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userResponse is the public projection of a user; the password hash never
// leaves the server.
type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.Logger != nil {
			h.Logger.WithFields(logrus.Fields{"details": validation.ToDetails(err)}).Debug("register payload rejected")
		}
		response.Err(c, http.StatusBadRequest, "All fields required")
		return
	}

	_, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		response.Success(c)
	case errors.Is(err, application.ErrMissingFields):
		response.Err(c, http.StatusBadRequest, "All fields required")
	case errors.Is(err, application.ErrEmailInUse):
		response.Err(c, http.StatusBadRequest, "Email already in use")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("register failed")
		}
		response.Err(c, http.StatusInternalServerError, "Registration failed")
	}
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Same response as bad credentials so the payload shape leaks nothing.
		response.Err(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	u, token, _, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Err(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("login failed")
		}
		response.Err(c, http.StatusInternalServerError, "Login failed")
		return
	}

	response.OK(c, gin.H{"token": token, "user": toUserResponse(u)})
}
