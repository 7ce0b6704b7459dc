package categoryRepo

import "citylinker/models"

// CategoryRepository defines methods for category data access.
type CategoryRepository interface {
	// GetByID retrieves a category by its unique ID.
	GetByID(id string) (*models.Category, error)
	// GetAll retrieves all categories sorted by name ascending.
	GetAll() ([]models.Category, error)
	// Create inserts a new category record.
	Create(category *models.Category) error
}
