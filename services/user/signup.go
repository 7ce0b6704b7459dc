package user

import (
	"fmt"
	"strings"
	"time"

	"citylinker/models"
	"citylinker/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenDuration matches the original credential lifetime of one day.
const tokenDuration = 24 * time.Hour

// Register validates basic data, checks for duplicates, hashes the password
// and persists the account, then returns a signed bearer credential.
//
// New accounts always start at the "user" role; elevation happens only through
// the admin promote endpoint.
func (s *DefaultUserService) Register(req RegisterRequest) (*AuthResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return nil, utils.ValidationError{Reason: "username, email and password are required"}
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, utils.ConflictError{Reason: "user already exists"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
	}

	if err := s.Repo.Create(&userObj); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Role, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:       userObj.ID,
		Token:    token,
		Username: userObj.Username,
		Email:    userObj.Email,
		Role:     userObj.Role,
	}, nil
}

// FindOrCreateGoogleUser resolves the account bound to a verified Google
// identity, creating it on first sign-in. Google-created accounts get the
// "provider" role, matching how business owners onboard through OAuth.
func (s *DefaultUserService) FindOrCreateGoogleUser(profile GoogleProfile) (*models.User, error) {
	existing, err := s.Repo.GetByGoogleID(profile.GoogleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	userObj := models.User{
		ID:       uuid.New().String(),
		Username: profile.Name,
		Email:    strings.ToLower(profile.Email),
		GoogleID: profile.GoogleID,
		Avatar:   profile.Picture,
		Role:     models.RoleProvider,
	}
	if err := s.Repo.Create(&userObj); err != nil {
		return nil, err
	}
	return &userObj, nil
}
