package user

import (
	providerRepo "citylinker/database/repository/provider"
	userRepo "citylinker/database/repository/user"
	"citylinker/models"
)

type UserService interface {
	// Credentials
	Register(req RegisterRequest) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)
	Logout(tokenString string) error

	// Self-service account
	GetProfile(userID string) (*models.Profile, error)
	UpdateProfile(userID string, req UpdateProfileRequest) (*models.User, error)
	DeleteAccount(userID, password string) error

	// Favorites
	ToggleFavorite(userID, providerID string) (*FavoriteResult, error)
	ListFavorites(userID string) ([]models.ProviderSummary, error)

	// Admin
	Promote(callerID, targetID string) (*models.User, error)
	Demote(callerID, targetID string) (*models.User, error)
	GetAllUsers() ([]models.User, error)

	// OAuth
	FindOrCreateGoogleUser(profile GoogleProfile) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo         userRepo.UserRepository
	ProviderRepo providerRepo.ProviderRepository
}

// RegisterRequest carries the password-registration fields.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the self-service profile changes. A new
// password requires the current one.
type UpdateProfileRequest struct {
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Avatar          *string `json:"avatar"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

// AuthResponse is the credential issued on register/login.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// FavoriteResult reports the toggle outcome and the resulting set.
type FavoriteResult struct {
	Added     bool     `json:"added"`
	Message   string   `json:"message"`
	Favorites []string `json:"favorites"`
}

// GoogleProfile is the identity the OAuth callback resolves.
type GoogleProfile struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}
