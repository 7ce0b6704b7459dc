package provider

import (
	providerRepo "citylinker/database/repository/provider"
	"citylinker/models"
	"citylinker/services/storage"
)

// ProviderService manages business listings.
type ProviderService interface {
	CreateProvider(doc models.Provider) (*models.Provider, error)
	GetProviderByID(id string) (*models.Provider, error)
	ListProviders(owner string) ([]models.Provider, error)
	ListFeatured() ([]models.Provider, error)
	SearchProviders(term, category string) ([]models.Provider, error)
	ListByCategory(categoryID, sort string) ([]models.Provider, error)
	UpdateProvider(id string, doc models.Provider) (*models.Provider, error)
	DeleteProvider(id string) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo    providerRepo.ProviderRepository
	Storage storage.StorageService
}

// featuredLimit caps the featured listing on the landing page.
const featuredLimit = 6
