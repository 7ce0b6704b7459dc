package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"citylinker/config"
	"citylinker/models"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	usr, ok := f.users[id]
	if !ok {
		return nil, utils.NotFoundError{Resource: "user", ID: id}
	}
	return usr, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error)       { return nil, nil }
func (f *fakeUserRepo) GetByGoogleID(googleID string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetAll() ([]models.User, error)                      { return nil, nil }
func (f *fakeUserRepo) Create(user *models.User) error                      { return nil }
func (f *fakeUserRepo) Update(user *models.User) error                      { return nil }
func (f *fakeUserRepo) Delete(id string) error                              { return nil }
func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}

func newAuthRouter(repo *fakeUserRepo, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Authenticate(repo)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(CtxUserID),
			"role":   c.GetString(CtxUserRole),
		})
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthenticateRejectsMissingCredential(t *testing.T) {
	config.AppConfig.JWTSecret = "unit-test-secret"
	r := newAuthRouter(&fakeUserRepo{users: map[string]*models.User{}})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic Zm9vOmJhcg=="},
		{"bare token", "abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		role     string
		haveRole bool
		want     int
	}{
		{"unauthenticated", "", false, http.StatusUnauthorized},
		{"insufficient role", models.RoleUser, true, http.StatusForbidden},
		{"allowed role", models.RoleAdmin, true, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin", func(c *gin.Context) {
				if tt.haveRole {
					c.Set(CtxUserRole, tt.role)
				}
			}, Authorize(models.RoleAdmin), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRateLimiterThrottles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.MaxRequestsPerMin = 2

	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		last = w.Code
		time.Sleep(time.Millisecond)
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("burst of requests ended with %d, want 429", last)
	}
}
