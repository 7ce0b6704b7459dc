package providerRepo

import "citylinker/models"

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetAll retrieves all providers, optionally filtered by owner.
	GetAll(owner string) ([]models.Provider, error)
	// GetFeatured retrieves featured providers sorted by rating, capped at limit.
	GetFeatured(limit int) ([]models.Provider, error)
	// Search matches term against name, description, city and service names,
	// optionally intersected with an exact category.
	Search(term, category string) ([]models.Provider, error)
	// GetByCategory retrieves providers in a category with the given sort order.
	GetByCategory(categoryID string, sort SortOrder) ([]models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update replaces mutable fields of an existing provider record.
	Update(provider *models.Provider) error
	// UpdateAggregates writes the derived rating fields with a compare-and-swap
	// against the previously observed pair. Reports whether the swap matched.
	UpdateAggregates(id string, oldAvg float64, oldCount int, newAvg float64, newCount int) (bool, error)
	// Delete removes a provider record by its ID.
	Delete(id string) error
}

// SortOrder selects the ordering of category listings.
type SortOrder string

const (
	SortByRating  SortOrder = "rating"
	SortByReviews SortOrder = "reviews"
	SortByName    SortOrder = "name"
)
