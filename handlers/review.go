package handlers

import (
	"net/http"

	"citylinker/middleware"
	"citylinker/services/review"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes the review endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// ListByProviderHandler handles GET /api/reviews/provider/:providerId?sort=.
func (h *ReviewHandler) ListByProviderHandler(c *gin.Context) {
	reviews, err := h.Service.ListByProvider(c.Param("providerId"), c.Query("sort"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReviewHandler handles POST /api/reviews. The review is always authored
// by the authenticated caller.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req review.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid create review request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}
	req.User = c.GetString(middleware.CtxUserID)

	created, err := h.Service.CreateReview(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateReviewHandler handles PUT /api/reviews/:id.
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req review.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid update review request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateReview(
		c.Param("id"),
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxUserRole),
		req,
	)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReviewHandler handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	err := h.Service.DeleteReview(
		c.Param("id"),
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxUserRole),
	)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review removed"})
}
