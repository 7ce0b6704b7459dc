package reviewRepo

import "citylinker/models"

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// GetByID retrieves a review by its unique ID.
	GetByID(id string) (*models.Review, error)
	// GetByProvider retrieves all reviews for a provider with the given sort
	// order, author identity resolved.
	GetByProvider(providerID string, sort SortOrder) ([]models.Review, error)
	// GetByProviderAndUser retrieves the review a user left for a provider;
	// nil without error when none exists.
	GetByProviderAndUser(providerID, userID string) (*models.Review, error)
	// Create inserts a new review record. A duplicate (provider, user) pair
	// surfaces as a ConflictError.
	Create(review *models.Review) error
	// Update modifies the mutable fields of an existing review record.
	Update(review *models.Review) error
	// Delete removes a review record by its ID.
	Delete(id string) error
	// AggregateForProvider computes the rating mean and count over all current
	// reviews of a provider. Returns 0, 0 when no reviews exist.
	AggregateForProvider(providerID string) (avg float64, count int, err error)
}

// SortOrder selects the ordering of review listings.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortHighest SortOrder = "highest"
	SortLowest  SortOrder = "lowest"
)
