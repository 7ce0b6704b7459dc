package user

import (
	"fmt"
	"strings"

	"citylinker/models"
	"citylinker/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the account view with the password excluded and the
// favorites resolved to provider summaries.
func (s *DefaultUserService) GetProfile(userID string) (*models.Profile, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	favorites, err := s.resolveFavorites(userRec.Favorites)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		ID:        userRec.ID,
		Username:  userRec.Username,
		Email:     userRec.Email,
		Avatar:    userRec.Avatar,
		Role:      userRec.Role,
		Favorites: favorites,
		CreatedAt: userRec.CreatedAt,
	}, nil
}

// UpdateProfile changes username, email and avatar, and the password when the
// current one verifies. Email changes re-check uniqueness.
func (s *DefaultUserService) UpdateProfile(userID string, req UpdateProfileRequest) (*models.User, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		userRec.Username = strings.TrimSpace(req.Username)
	}

	if req.Email != "" {
		email := strings.TrimSpace(strings.ToLower(req.Email))
		if email != userRec.Email {
			existing, err := s.Repo.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != userID {
				return nil, utils.ConflictError{Reason: "email already in use"}
			}
			userRec.Email = email
		}
	}

	if req.Avatar != nil {
		userRec.Avatar = *req.Avatar
	}

	if req.NewPassword != "" {
		if userRec.Kind() == models.AccountGoogle {
			return nil, utils.ValidationError{Reason: "this account signs in with Google and has no password"}
		}
		if req.CurrentPassword == "" {
			return nil, utils.ValidationError{Reason: "current password is required to change password"}
		}
		if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return nil, utils.ValidationError{Reason: "current password is incorrect"}
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			utils.GetLogger().Error("UpdateProfile: failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("profile update failed, please try again")
		}
		userRec.PasswordHash = string(hashed)
	}

	if err := s.Repo.Update(userRec); err != nil {
		return nil, err
	}
	return userRec, nil
}

// DeleteAccount hard-deletes an account after re-verifying the password.
func (s *DefaultUserService) DeleteAccount(userID, password string) error {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}

	if password == "" {
		return utils.ValidationError{Reason: "password is required to delete account"}
	}
	if userRec.Kind() == models.AccountGoogle {
		return utils.ValidationError{Reason: "this account signs in with Google and has no password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return utils.ValidationError{Reason: "incorrect password"}
	}

	return s.Repo.Delete(userID)
}

func (s *DefaultUserService) resolveFavorites(ids []string) ([]models.ProviderSummary, error) {
	summaries := make([]models.ProviderSummary, 0, len(ids))
	for _, id := range ids {
		prov, err := s.ProviderRepo.GetByID(id)
		if err != nil {
			// A favorite can point at a listing an admin has since deleted;
			// skip it rather than failing the whole profile.
			continue
		}
		summaries = append(summaries, models.ProviderSummary{
			ID:            prov.ID,
			Name:          prov.Name,
			Description:   prov.Description,
			Category:      prov.Category,
			Location:      prov.Location,
			AverageRating: prov.AverageRating,
		})
	}
	return summaries, nil
}
