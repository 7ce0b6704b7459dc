package provider

import (
	"strings"

	providerRepo "citylinker/database/repository/provider"
	"citylinker/models"
	"citylinker/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validateRequired checks the fields the listing form must always carry.
func validateRequired(doc *models.Provider) error {
	var missing []string
	if strings.TrimSpace(doc.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(doc.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(doc.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(doc.Contact) == "" {
		missing = append(missing, "contact")
	}
	if strings.TrimSpace(doc.Location.Address) == "" {
		missing = append(missing, "location.address")
	}
	if strings.TrimSpace(doc.Location.City) == "" {
		missing = append(missing, "location.city")
	}
	if strings.TrimSpace(doc.Location.State) == "" {
		missing = append(missing, "location.state")
	}
	if strings.TrimSpace(doc.Location.ZipCode) == "" {
		missing = append(missing, "location.zipCode")
	}
	if len(missing) > 0 {
		return utils.ValidationError{Reason: "missing required fields: " + strings.Join(missing, ", ")}
	}
	return nil
}

// CreateProvider validates and persists a new listing. The derived rating
// fields and the trust flags always start at their zero defaults regardless of
// what the client sent.
func (s *DefaultProviderService) CreateProvider(doc models.Provider) (*models.Provider, error) {
	if err := validateRequired(&doc); err != nil {
		return nil, err
	}

	doc.ID = uuid.New().String()
	doc.AverageRating = 0
	doc.ReviewCount = 0
	doc.Featured = false
	doc.Verified = false

	if err := s.Repo.Create(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetProviderByID returns a single listing.
func (s *DefaultProviderService) GetProviderByID(id string) (*models.Provider, error) {
	return s.Repo.GetByID(id)
}

// ListProviders returns all listings, optionally filtered by owner.
func (s *DefaultProviderService) ListProviders(owner string) ([]models.Provider, error) {
	return s.Repo.GetAll(owner)
}

// ListFeatured returns the top featured listings by rating.
func (s *DefaultProviderService) ListFeatured() ([]models.Provider, error) {
	return s.Repo.GetFeatured(featuredLimit)
}

// SearchProviders matches a term against name, description, city and service
// names, optionally intersected with a category.
func (s *DefaultProviderService) SearchProviders(term, category string) ([]models.Provider, error) {
	return s.Repo.Search(strings.TrimSpace(term), strings.TrimSpace(category))
}

// ListByCategory returns listings in a category. sort is one of
// rating, reviews, name; rating when absent or unknown.
func (s *DefaultProviderService) ListByCategory(categoryID, sort string) ([]models.Provider, error) {
	if _, err := uuid.Parse(categoryID); err != nil {
		return nil, utils.ValidationError{Reason: "invalid category ID"}
	}

	var order providerRepo.SortOrder
	switch sort {
	case "reviews":
		order = providerRepo.SortByReviews
	case "name":
		order = providerRepo.SortByName
	default:
		order = providerRepo.SortByRating
	}
	return s.Repo.GetByCategory(categoryID, order)
}

// UpdateProvider replaces the mutable fields of a listing after re-running
// validation. The derived rating fields are untouchable through this path.
func (s *DefaultProviderService) UpdateProvider(id string, doc models.Provider) (*models.Provider, error) {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	doc.ID = existing.ID
	doc.AverageRating = existing.AverageRating
	doc.ReviewCount = existing.ReviewCount
	doc.CreatedAt = existing.CreatedAt
	if doc.Owner == "" {
		doc.Owner = existing.Owner
	}
	if err := validateRequired(&doc); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(&doc); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// DeleteProvider removes a listing and best-effort unlinks its uploaded
// images. File removal failures are logged, never surfaced; the document
// delete has already happened and stays deleted.
func (s *DefaultProviderService) DeleteProvider(id string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	logger := utils.GetLogger()
	for _, img := range existing.Images {
		if s.Storage == nil {
			break
		}
		if err := s.Storage.Remove(img); err != nil {
			logger.Warn("Failed to remove provider image",
				zap.String("provider", id),
				zap.String("image", img),
				zap.Error(err))
		}
	}
	return nil
}
