package user

import (
	"fmt"
	"strings"
	"time"

	"citylinker/models"
	"citylinker/utils"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies an email/password pair and returns a signed bearer
// credential. Unknown email and wrong password are indistinguishable; an
// account with no password (Google sign-in) gets an explicit redirect message
// instead, since telling the user to try harder on a password that does not
// exist helps nobody.
func (s *DefaultUserService) Login(email, password string) (*AuthResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, utils.AuthError{Reason: "invalid credentials"}
	}

	if userRec.Kind() == models.AccountGoogle {
		return nil, utils.ValidationError{
			Reason: "this account was registered using Google. Please log in with Google instead",
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, utils.AuthError{Reason: "invalid credentials"}
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Role, tokenDuration)
	if err != nil {
		utils.GetLogger().Error("Login: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:       userRec.ID,
		Token:    token,
		Username: userRec.Username,
		Email:    userRec.Email,
		Role:     userRec.Role,
	}, nil
}

// Logout revokes the presented bearer credential by putting its hash on the
// denylist until the token's own expiry.
func (s *DefaultUserService) Logout(tokenString string) error {
	token, err := utils.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		// Already invalid; nothing to revoke.
		return nil
	}

	ttl := tokenDuration
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if exp, ok := claims["exp"].(float64); ok {
			ttl = time.Until(time.Unix(int64(exp), 0))
		}
	}

	client := utils.GetAuthCacheClient()
	return utils.RevokeToken(client, utils.HashToken(tokenString), ttl)
}
