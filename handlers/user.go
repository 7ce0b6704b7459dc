package handlers

import (
	"net/http"
	"strings"

	"citylinker/middleware"
	"citylinker/services/user"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes the account endpoints.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginUserHandler handles POST /api/users/login.
func (h *UserHandler) LoginUserHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutUserHandler handles POST /api/users/logout. It revokes the presented
// bearer token and clears the session cookie; both are best-effort.
func (h *UserHandler) LogoutUserHandler(c *gin.Context) {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if err := h.Service.Logout(tokenString); err != nil {
			utils.GetLogger().Warn("Failed to revoke token on logout", zap.Error(err))
		}
	}
	if sessionID, err := c.Cookie(middleware.SessionCookieName); err == nil && sessionID != "" {
		if err := utils.DeleteSession(utils.GetAuthCacheClient(), sessionID); err != nil {
			utils.GetLogger().Warn("Failed to delete session on logout", zap.Error(err))
		}
		c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfileHandler handles GET /api/users/profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	profile, err := h.Service.GetProfile(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid update profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateProfile(c.GetString(middleware.CtxUserID), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": updated})
}

// DeleteAccountHandler handles DELETE /api/users/profile.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	// A missing body means a missing password; the service rejects it.
	_ = c.ShouldBindJSON(&req)

	if err := h.Service.DeleteAccount(c.GetString(middleware.CtxUserID), req.Password); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// ToggleFavoriteHandler handles POST /api/users/favorites/:providerId.
func (h *UserHandler) ToggleFavoriteHandler(c *gin.Context) {
	result, err := h.Service.ToggleFavorite(c.GetString(middleware.CtxUserID), c.Param("providerId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListFavoritesHandler handles GET /api/users/favorites.
func (h *UserHandler) ListFavoritesHandler(c *gin.Context) {
	favorites, err := h.Service.ListFavorites(c.GetString(middleware.CtxUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}
