package handlers

import (
	"net/http"

	"citylinker/services/category"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryHandler exposes the taxonomy endpoints.
type CategoryHandler struct {
	Service category.CategoryService
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{Service: svc}
}

// ListCategoriesHandler handles GET /api/categories.
func (h *CategoryHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.Service.ListCategories()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryHandler handles GET /api/categories/:id.
func (h *CategoryHandler) GetCategoryHandler(c *gin.Context) {
	cat, err := h.Service.GetCategoryByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// CreateCategoryHandler handles POST /api/categories.
func (h *CategoryHandler) CreateCategoryHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid create category request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	cat, err := h.Service.CreateCategory(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}
