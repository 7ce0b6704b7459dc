package review

import (
	providerRepo "citylinker/database/repository/provider"
	reviewRepo "citylinker/database/repository/review"
	"citylinker/models"
	"time"
)

// ReviewService manages user reviews and keeps the parent provider's derived
// rating fields in sync with the review set.
type ReviewService interface {
	ListByProvider(providerID, sort string) ([]models.Review, error)
	CreateReview(req CreateReviewRequest) (*models.Review, error)
	UpdateReview(id, callerID, callerRole string, req UpdateReviewRequest) (*models.Review, error)
	DeleteReview(id, callerID, callerRole string) error
}

// CreateReviewRequest carries the fields accepted at creation.
type CreateReviewRequest struct {
	Provider    string     `json:"provider" binding:"required"`
	User        string     `json:"-"`
	Rating      int        `json:"rating" binding:"required"`
	Comment     string     `json:"comment" binding:"required"`
	ServiceDate *time.Time `json:"serviceDate"`
}

// UpdateReviewRequest carries the mutable fields; zero values mean unchanged.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo         reviewRepo.ReviewRepository
	ProviderRepo providerRepo.ProviderRepository
}
