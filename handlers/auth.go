package handlers

import (
	"net/http"
	"time"

	"citylinker/config"
	"citylinker/middleware"
	"citylinker/services/social"
	"citylinker/services/user"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandler serves the Google OAuth handshake.
type AuthHandler struct {
	Service user.UserService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// GoogleLoginHandler handles GET /auth/google. It issues a single-use state
// nonce and redirects the browser to Google's consent screen.
func (h *AuthHandler) GoogleLoginHandler(c *gin.Context) {
	state := uuid.New().String()
	if err := utils.SaveOAuthState(utils.GetAuthCacheClient(), state); err != nil {
		utils.GetLogger().Error("Failed to persist OAuth state", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start Google sign-in", "")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, social.OAuthConfig().AuthCodeURL(state))
}

// GoogleCallbackHandler handles GET /auth/google/callback. It verifies the
// state nonce, exchanges the code for a verified Google identity, resolves the
// local account and establishes a cookie-backed session.
func (h *AuthHandler) GoogleCallbackHandler(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing OAuth state", "")
		return
	}
	ok, err := utils.ConsumeOAuthState(utils.GetAuthCacheClient(), state)
	if err != nil {
		utils.GetLogger().Error("Failed to check OAuth state", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Google sign-in failed", "")
		return
	}
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired OAuth state", "")
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing authorization code", "")
		return
	}

	info, err := social.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		utils.GetLogger().Warn("Google code exchange failed", zap.Error(err))
		utils.JSONError(c, http.StatusUnauthorized, "Google sign-in failed", "")
		return
	}

	account, err := h.Service.FindOrCreateGoogleUser(user.GoogleProfile{
		GoogleID: info.GoogleID,
		Email:    info.Email,
		Name:     info.Name,
		Picture:  info.Picture,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	sessionID := uuid.New().String()
	session := utils.Session{
		UserID:    account.ID,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: time.Now(),
	}
	if err := utils.SaveSession(utils.GetAuthCacheClient(), sessionID, session); err != nil {
		utils.GetLogger().Error("Failed to persist session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Google sign-in failed", "")
		return
	}

	c.SetCookie(middleware.SessionCookieName, sessionID,
		int(utils.SessionTTL/time.Second), "/", "", config.IsProduction(), true)
	c.Redirect(http.StatusTemporaryRedirect, config.AppConfig.ClientOrigin)
}
