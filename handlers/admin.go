package handlers

import (
	"fmt"
	"net/http"

	"citylinker/middleware"
	"citylinker/services/user"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the role-management endpoints.
type AdminHandler struct {
	Service user.UserService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc user.UserService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// PromoteUserHandler handles PUT /api/admin/promote/:userId.
func (h *AdminHandler) PromoteUserHandler(c *gin.Context) {
	promoted, err := h.Service.Promote(c.GetString(middleware.CtxUserID), c.Param("userId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s has been promoted to admin.", promoted.Email),
		"user":    gin.H{"id": promoted.ID, "email": promoted.Email, "role": promoted.Role},
	})
}

// DemoteUserHandler handles PUT /api/admin/demote/:userId.
func (h *AdminHandler) DemoteUserHandler(c *gin.Context) {
	demoted, err := h.Service.Demote(c.GetString(middleware.CtxUserID), c.Param("userId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s has been demoted to user.", demoted.Email),
		"user":    gin.H{"id": demoted.ID, "email": demoted.Email, "role": demoted.Role},
	})
}

// GetAllUsersHandler handles GET /api/admin/users.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.Service.GetAllUsers()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
