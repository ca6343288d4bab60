package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/auth"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/util"
)

// AuthedHandler is a handler that requires a verified identity. Routes wire
// these through Authed, which makes the authentication requirement visible
// at the call site instead of hiding it in group middleware.
type AuthedHandler func(c *gin.Context, actor *models.User)

// Authed verifies the bearer or cookie token, loads the user and passes it
// into the wrapped handler. Unauthenticated requests are rejected here.
func (h *Handlers) Authed(fn AuthedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			util.RespondUnauthorized(c, "no token provided")
			return
		}

		userID, err := h.auth.VerifyAccessToken(token)
		if err != nil {
			util.RespondUnauthorized(c, "invalid or expired token")
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			util.RespondUnauthorized(c, "user no longer exists")
			return
		}

		c.Set("user_id", user.ID)
		fn(c, &user)
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie
	}
	return ""
}

// Register creates a new account
// POST /api/v1/users/register
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Register(req)
	switch {
	case errors.Is(err, auth.ErrUserExists):
		util.RespondBadRequest(c, "user with this email already exists")
		return
	case errors.Is(err, auth.ErrUsernameExists):
		util.RespondBadRequest(c, "username already taken")
		return
	case err != nil:
		util.RespondInternalError(c, "failed to register user")
		return
	}

	util.Respond(c, http.StatusCreated, resp, "user registered successfully")
}

// Login authenticates with email/password
// POST /api/v1/users/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.auth.Login(req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		util.RespondUnauthorized(c, "invalid email or password")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to log in")
		return
	}

	util.Respond(c, http.StatusOK, resp, "logged in successfully")
}

// RefreshToken exchanges a refresh token for a new token pair
// POST /api/v1/users/refresh-token
func (h *Handlers) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		if cookie, err := c.Cookie("refreshToken"); err == nil {
			req.RefreshToken = cookie
		}
	}
	if req.RefreshToken == "" {
		util.RespondBadRequest(c, "refresh token is required")
		return
	}

	resp, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		util.RespondUnauthorized(c, "invalid refresh token")
		return
	}

	util.Respond(c, http.StatusOK, resp, "token refreshed successfully")
}

// Logout invalidates the stored refresh token
// POST /api/v1/users/logout
func (h *Handlers) Logout(c *gin.Context, actor *models.User) {
	if err := h.auth.Logout(actor.ID); err != nil {
		util.RespondInternalError(c, "failed to log out")
		return
	}
	util.Respond(c, http.StatusOK, gin.H{}, "logged out successfully")
}

// Me returns the authenticated user
// GET /api/v1/users/current-user
func (h *Handlers) Me(c *gin.Context, actor *models.User) {
	util.Respond(c, http.StatusOK, actor, "current user fetched successfully")
}
