package user

import (
	"citylinker/models"
	"citylinker/utils"
)

// Promote elevates the target account to the admin role. Admins cannot change
// their own role through this path.
func (s *DefaultUserService) Promote(callerID, targetID string) (*models.User, error) {
	if callerID == targetID {
		return nil, utils.ValidationError{Reason: "you cannot change your own role through this endpoint"}
	}

	userRec, err := s.Repo.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	userRec.Role = models.RoleAdmin
	if err := s.Repo.Update(userRec); err != nil {
		return nil, err
	}
	return userRec, nil
}

// Demote drops an admin account back to the user role. Self-demotion is
// rejected so the last admin cannot lock everyone out by accident.
func (s *DefaultUserService) Demote(callerID, targetID string) (*models.User, error) {
	if callerID == targetID {
		return nil, utils.ValidationError{Reason: "you cannot demote yourself; another admin must do this"}
	}

	userRec, err := s.Repo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if userRec.Role != models.RoleAdmin {
		return nil, utils.ValidationError{Reason: "user is not an admin"}
	}

	userRec.Role = models.RoleUser
	if err := s.Repo.Update(userRec); err != nil {
		return nil, err
	}
	return userRec, nil
}

// GetAllUsers returns every account; admin console listing.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}
