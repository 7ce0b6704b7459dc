package user

import "citylinker/models"

// ToggleFavorite adds the provider to the user's favorites if absent and
// removes it if present, returning the resulting set.
func (s *DefaultUserService) ToggleFavorite(userID, providerID string) (*FavoriteResult, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ProviderRepo.GetByID(providerID); err != nil {
		return nil, err
	}

	found := false
	filtered := make([]string, 0, len(userRec.Favorites))
	for _, fav := range userRec.Favorites {
		if fav == providerID {
			found = true
			continue
		}
		filtered = append(filtered, fav)
	}

	result := &FavoriteResult{}
	if found {
		userRec.Favorites = filtered
		result.Added = false
		result.Message = "Removed from favorites"
	} else {
		userRec.Favorites = append(filtered, providerID)
		result.Added = true
		result.Message = "Added to favorites"
	}

	if err := s.Repo.Update(userRec); err != nil {
		return nil, err
	}
	result.Favorites = userRec.Favorites
	return result, nil
}

// ListFavorites resolves the user's favorites to provider summaries.
func (s *DefaultUserService) ListFavorites(userID string) ([]models.ProviderSummary, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return s.resolveFavorites(userRec.Favorites)
}
