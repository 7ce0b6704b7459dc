package category

import (
	"strings"

	"citylinker/models"
	"citylinker/utils"

	"github.com/google/uuid"
)

// ListCategories returns all categories sorted by name.
func (s *DefaultCategoryService) ListCategories() ([]models.Category, error) {
	return s.Repo.GetAll()
}

// GetCategoryByID returns a single category.
func (s *DefaultCategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.Repo.GetByID(id)
}

// CreateCategory persists a new taxonomy entry. Name and slug are identity
// fields; duplicates surface as Conflict from the store's unique indexes.
func (s *DefaultCategoryService) CreateCategory(req CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(strings.ToLower(req.Slug))
	if name == "" || slug == "" {
		return nil, utils.ValidationError{Reason: "name and slug are required"}
	}

	cat := models.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug,
		Icon:        req.Icon,
		Description: req.Description,
	}
	if err := s.Repo.Create(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}
