package category

import (
	categoryRepo "citylinker/database/repository/category"
	"citylinker/models"
)

// CategoryService manages the directory taxonomy.
type CategoryService interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	CreateCategory(req CreateCategoryRequest) (*models.Category, error)
}

// CreateCategoryRequest carries the fields accepted at creation.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// DefaultCategoryService is the production implementation.
type DefaultCategoryService struct {
	Repo categoryRepo.CategoryRepository
}
