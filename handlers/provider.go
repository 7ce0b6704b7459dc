package handlers

import (
	"net/http"

	"citylinker/middleware"
	"citylinker/models"
	"citylinker/services/provider"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes the listing endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

// ListProvidersHandler handles GET /api/providers with an optional ?owner= filter.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.Service.ListProviders(c.Query("owner"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// GetFeaturedHandler handles GET /api/providers/featured.
func (h *ProviderHandler) GetFeaturedHandler(c *gin.Context) {
	providers, err := h.Service.ListFeatured()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// SearchProvidersHandler handles GET /api/providers/search?term=&category=.
func (h *ProviderHandler) SearchProvidersHandler(c *gin.Context) {
	providers, err := h.Service.SearchProviders(c.Query("term"), c.Query("category"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// ListByCategoryHandler handles GET /api/providers/category/:categoryId?sort=.
func (h *ProviderHandler) ListByCategoryHandler(c *gin.Context) {
	providers, err := h.Service.ListByCategory(c.Param("categoryId"), c.Query("sort"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// GetProviderByIDHandler handles GET /api/providers/:id.
func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	prov, err := h.Service.GetProviderByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prov)
}

// CreateProviderHandler handles POST /api/providers. The authenticated caller
// becomes the listing owner unless an admin set one explicitly.
func (h *ProviderHandler) CreateProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var doc models.Provider
	if err := c.ShouldBindJSON(&doc); err != nil {
		logger.Error("Invalid create provider request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	callerID := c.GetString(middleware.CtxUserID)
	callerRole := c.GetString(middleware.CtxUserRole)
	if doc.Owner == "" || callerRole != models.RoleAdmin {
		doc.Owner = callerID
	}

	created, err := h.Service.CreateProvider(doc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProviderHandler handles PUT /api/providers/:id.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var doc models.Provider
	if err := c.ShouldBindJSON(&doc); err != nil {
		logger.Error("Invalid update provider request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateProvider(c.Param("id"), doc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProviderHandler handles DELETE /api/providers/:id.
func (h *ProviderHandler) DeleteProviderHandler(c *gin.Context) {
	if err := h.Service.DeleteProvider(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Provider deleted successfully"})
}
