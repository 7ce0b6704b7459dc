package user

import (
	"errors"
	"os"
	"testing"

	"citylinker/config"
	providerRepo "citylinker/database/repository/provider"
	"citylinker/models"
	"citylinker/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	config.AppConfig.JWTSecret = "unit-test-secret"
	os.Exit(m.Run())
}

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (m *memUserRepo) GetByID(id string) (*models.User, error) {
	usr, ok := m.users[id]
	if !ok {
		return nil, utils.NotFoundError{Resource: "user", ID: id}
	}
	cp := *usr
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, usr := range m.users {
		if usr.Email == email {
			cp := *usr
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByGoogleID(googleID string) (*models.User, error) {
	for _, usr := range m.users {
		if usr.GoogleID == googleID {
			cp := *usr
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetAll() ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, usr := range m.users {
		out = append(out, *usr)
	}
	return out, nil
}

func (m *memUserRepo) Create(user *models.User) error {
	for _, usr := range m.users {
		if usr.Email == user.Email {
			return utils.ConflictError{Reason: "a user with this email already exists"}
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Update(user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return utils.NotFoundError{Resource: "user", ID: user.ID}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Delete(id string) error {
	if _, ok := m.users[id]; !ok {
		return utils.NotFoundError{Resource: "user", ID: id}
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return m.GetByID(id)
}

type stubProviderRepo struct {
	providers map[string]*models.Provider
}

func newStubProviderRepo(ids ...string) *stubProviderRepo {
	s := &stubProviderRepo{providers: make(map[string]*models.Provider)}
	for _, id := range ids {
		s.providers[id] = &models.Provider{ID: id, Name: "Provider " + id, AverageRating: 4.5}
	}
	return s
}

func (s *stubProviderRepo) GetByID(id string) (*models.Provider, error) {
	prov, ok := s.providers[id]
	if !ok {
		return nil, utils.NotFoundError{Resource: "provider", ID: id}
	}
	cp := *prov
	return &cp, nil
}

func (s *stubProviderRepo) GetAll(owner string) ([]models.Provider, error)     { return nil, nil }
func (s *stubProviderRepo) GetFeatured(limit int) ([]models.Provider, error)   { return nil, nil }
func (s *stubProviderRepo) Search(term, cat string) ([]models.Provider, error) { return nil, nil }
func (s *stubProviderRepo) GetByCategory(categoryID string, sort providerRepo.SortOrder) ([]models.Provider, error) {
	return nil, nil
}
func (s *stubProviderRepo) Create(provider *models.Provider) error { return nil }
func (s *stubProviderRepo) Update(provider *models.Provider) error { return nil }
func (s *stubProviderRepo) Delete(id string) error                 { return nil }
func (s *stubProviderRepo) UpdateAggregates(id string, oldAvg float64, oldCount int, newAvg float64, newCount int) (bool, error) {
	return true, nil
}

func newTestUserService(providerIDs ...string) (*DefaultUserService, *memUserRepo) {
	users := newMemUserRepo()
	return &DefaultUserService{Repo: users, ProviderRepo: newStubProviderRepo(providerIDs...)}, users
}

func TestRegister(t *testing.T) {
	svc, users := newTestUserService()

	resp, err := svc.Register(RegisterRequest{Username: "amina", Email: "Amina@Example.COM", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Role != models.RoleUser {
		t.Fatalf("role = %q, new accounts must start as %q", resp.Role, models.RoleUser)
	}
	if resp.Email != "amina@example.com" {
		t.Fatalf("email = %q, want normalized", resp.Email)
	}

	sub, role, err := utils.ExtractIdentityFromToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if sub != resp.ID || role != models.RoleUser {
		t.Fatalf("token identity = (%q, %q), want (%q, %q)", sub, role, resp.ID, models.RoleUser)
	}

	stored := users.users[resp.ID]
	if stored.PasswordHash == "s3cret" || stored.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService()

	if _, err := svc.Register(RegisterRequest{Username: "amina", Email: "a@b.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(RegisterRequest{Username: "other", Email: "A@B.com", Password: "pw"})
	var ce utils.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestUserService()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"no username", RegisterRequest{Email: "a@b.com", Password: "pw"}},
		{"no email", RegisterRequest{Username: "amina", Password: "pw"}},
		{"no password", RegisterRequest{Username: "amina", Email: "a@b.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.req)
			var ve utils.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestUserService()

	reg, err := svc.Register(RegisterRequest{Username: "amina", Email: "a@b.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login("A@B.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.ID != reg.ID || resp.Token == "" {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	var ae utils.AuthError
	if _, err := svc.Login("a@b.com", "wrong"); !errors.As(err, &ae) {
		t.Fatalf("wrong password: expected AuthError, got %v", err)
	}
	if _, err := svc.Login("nobody@b.com", "s3cret"); !errors.As(err, &ae) {
		t.Fatalf("unknown email: expected AuthError, got %v", err)
	}
}

func TestLoginGoogleAccountRedirects(t *testing.T) {
	svc, users := newTestUserService()

	users.users["g1"] = &models.User{
		ID:       "g1",
		Email:    "g@b.com",
		GoogleID: "google-sub-1",
		Role:     models.RoleProvider,
	}

	_, err := svc.Login("g@b.com", "anything")
	var ve utils.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestPromoteAndDemote(t *testing.T) {
	svc, users := newTestUserService()

	users.users["admin-1"] = &models.User{ID: "admin-1", Email: "root@b.com", Role: models.RoleAdmin}
	users.users["u1"] = &models.User{ID: "u1", Email: "u1@b.com", Role: models.RoleUser}

	var ve utils.ValidationError
	if _, err := svc.Promote("admin-1", "admin-1"); !errors.As(err, &ve) {
		t.Fatalf("self-promotion: expected ValidationError, got %v", err)
	}
	if _, err := svc.Demote("admin-1", "admin-1"); !errors.As(err, &ve) {
		t.Fatalf("self-demotion: expected ValidationError, got %v", err)
	}
	if _, err := svc.Demote("admin-1", "u1"); !errors.As(err, &ve) {
		t.Fatalf("demoting a non-admin: expected ValidationError, got %v", err)
	}

	promoted, err := svc.Promote("admin-1", "u1")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if promoted.Role != models.RoleAdmin {
		t.Fatalf("role = %q after promote", promoted.Role)
	}

	demoted, err := svc.Demote("admin-1", "u1")
	if err != nil {
		t.Fatalf("demote: %v", err)
	}
	if demoted.Role != models.RoleUser {
		t.Fatalf("role = %q after demote", demoted.Role)
	}
}

func TestToggleFavorite(t *testing.T) {
	svc, users := newTestUserService("prov-1")
	users.users["u1"] = &models.User{ID: "u1", Email: "u1@b.com", Role: models.RoleUser}

	added, err := svc.ToggleFavorite("u1", "prov-1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !added.Added || len(added.Favorites) != 1 {
		t.Fatalf("first toggle should add: %+v", added)
	}

	removed, err := svc.ToggleFavorite("u1", "prov-1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if removed.Added || len(removed.Favorites) != 0 {
		t.Fatalf("second toggle should remove: %+v", removed)
	}

	var nf utils.NotFoundError
	if _, err := svc.ToggleFavorite("u1", "ghost"); !errors.As(err, &nf) {
		t.Fatalf("unknown provider: expected NotFoundError, got %v", err)
	}
}

func TestGetProfileSkipsDeletedFavorites(t *testing.T) {
	svc, users := newTestUserService("prov-1")
	users.users["u1"] = &models.User{
		ID:        "u1",
		Email:     "u1@b.com",
		Role:      models.RoleUser,
		Favorites: []string{"prov-1", "deleted-prov"},
	}

	profile, err := svc.GetProfile("u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if len(profile.Favorites) != 1 || profile.Favorites[0].ID != "prov-1" {
		t.Fatalf("favorites = %+v, want just prov-1", profile.Favorites)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, users := newTestUserService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pw"), bcrypt.MinCost)
	users.users["u1"] = &models.User{ID: "u1", Email: "u1@b.com", PasswordHash: string(hash), Role: models.RoleUser}
	users.users["u2"] = &models.User{ID: "u2", Email: "taken@b.com", Role: models.RoleUser}

	var ce utils.ConflictError
	if _, err := svc.UpdateProfile("u1", UpdateProfileRequest{Email: "taken@b.com"}); !errors.As(err, &ce) {
		t.Fatalf("email collision: expected ConflictError, got %v", err)
	}

	var ve utils.ValidationError
	if _, err := svc.UpdateProfile("u1", UpdateProfileRequest{NewPassword: "new-pw"}); !errors.As(err, &ve) {
		t.Fatalf("password change without current: expected ValidationError, got %v", err)
	}
	if _, err := svc.UpdateProfile("u1", UpdateProfileRequest{CurrentPassword: "nope", NewPassword: "new-pw"}); !errors.As(err, &ve) {
		t.Fatalf("wrong current password: expected ValidationError, got %v", err)
	}

	updated, err := svc.UpdateProfile("u1", UpdateProfileRequest{
		Username:        "new-name",
		CurrentPassword: "old-pw",
		NewPassword:     "new-pw",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "new-name" {
		t.Fatalf("username = %q", updated.Username)
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-pw")) != nil {
		t.Fatal("new password does not verify")
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, users := newTestUserService()

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	users.users["u1"] = &models.User{ID: "u1", Email: "u1@b.com", PasswordHash: string(hash), Role: models.RoleUser}

	var ve utils.ValidationError
	if err := svc.DeleteAccount("u1", ""); !errors.As(err, &ve) {
		t.Fatalf("missing password: expected ValidationError, got %v", err)
	}
	if err := svc.DeleteAccount("u1", "wrong"); !errors.As(err, &ve) {
		t.Fatalf("wrong password: expected ValidationError, got %v", err)
	}

	if err := svc.DeleteAccount("u1", "pw"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := users.users["u1"]; ok {
		t.Fatal("account still present after delete")
	}
}

func TestFindOrCreateGoogleUser(t *testing.T) {
	svc, users := newTestUserService()

	created, err := svc.FindOrCreateGoogleUser(GoogleProfile{
		GoogleID: "google-sub-1",
		Email:    "Owner@Example.com",
		Name:     "Owner",
		Picture:  "https://example.com/p.png",
	})
	if err != nil {
		t.Fatalf("first sign-in: %v", err)
	}
	if created.Role != models.RoleProvider {
		t.Fatalf("role = %q, OAuth accounts onboard as %q", created.Role, models.RoleProvider)
	}
	if created.Email != "owner@example.com" {
		t.Fatalf("email = %q, want normalized", created.Email)
	}
	if created.Kind() != models.AccountGoogle {
		t.Fatalf("kind = %v, want AccountGoogle", created.Kind())
	}

	again, err := svc.FindOrCreateGoogleUser(GoogleProfile{GoogleID: "google-sub-1", Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("second sign-in: %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("second sign-in created a new account: %q vs %q", again.ID, created.ID)
	}
	if len(users.users) != 1 {
		t.Fatalf("have %d accounts, want 1", len(users.users))
	}
}
