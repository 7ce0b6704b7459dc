package routes

import (
	"net/http"
	"time"

	"citylinker/config"
	"citylinker/handlers"
	"citylinker/middleware"
	"citylinker/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers category endpoints. Creation is reserved
// for admins.
func RegisterCategoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/categories")
	{
		api.GET("", hb.Categories.ListCategoriesHandler)
		api.GET("/:id", hb.Categories.GetCategoryHandler)

		api.POST("", middleware.Authenticate(hb.UserRepo),
			middleware.Authorize(models.RoleAdmin), hb.Categories.CreateCategoryHandler)
	}
}

// RegisterProviderRoutes registers provider endpoints. Reads are public;
// writes require authentication and deletion is reserved for admins.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("", hb.Providers.ListProvidersHandler)
		api.GET("/featured", hb.Providers.GetFeaturedHandler)
		api.GET("/search", hb.Providers.SearchProvidersHandler)
		api.GET("/category/:categoryId", hb.Providers.ListByCategoryHandler)
		api.GET("/:id", hb.Providers.GetProviderByIDHandler)

		protected := api.Group("")
		protected.Use(middleware.Authenticate(hb.UserRepo))
		protected.POST("", hb.Providers.CreateProviderHandler)
		protected.POST("/multiple", hb.Storage.UploadProviderImagesHandler)
		protected.PUT("/:id", hb.Providers.UpdateProviderHandler)
		protected.DELETE("/:id", middleware.Authorize(models.RoleAdmin), hb.Providers.DeleteProviderHandler)
	}
}

// RegisterReviewRoutes registers review endpoints. Listing is public; writes
// require authentication, with ownership enforced by the service layer.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("/provider/:providerId", hb.Reviews.ListByProviderHandler)

		protected := api.Group("")
		protected.Use(middleware.Authenticate(hb.UserRepo))
		protected.POST("", hb.Reviews.CreateReviewHandler)
		protected.PUT("/:id", hb.Reviews.UpdateReviewHandler)
		protected.DELETE("/:id", hb.Reviews.DeleteReviewHandler)
	}
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterUserHandler)
		api.POST("/login", hb.Users.LoginUserHandler)

		protected := api.Group("")
		protected.Use(middleware.Authenticate(hb.UserRepo))
		protected.POST("/logout", hb.Users.LogoutUserHandler)
		protected.GET("/profile", hb.Users.GetProfileHandler)
		protected.PUT("/profile", hb.Users.UpdateProfileHandler)
		protected.DELETE("/profile", hb.Users.DeleteAccountHandler)
		protected.GET("/favorites", hb.Users.ListFavoritesHandler)
		protected.POST("/favorites/:providerId", hb.Users.ToggleFavoriteHandler)
	}
}

// RegisterAdminRoutes registers role-management endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.Authenticate(hb.UserRepo), middleware.Authorize(models.RoleAdmin))
		adminGroup.GET("/users", hb.Admin.GetAllUsersHandler)
		adminGroup.PUT("/promote/:userId", hb.Admin.PromoteUserHandler)
		adminGroup.PUT("/demote/:userId", hb.Admin.DemoteUserHandler)
	}
}

// RegisterAuthRoutes registers the Google OAuth handshake endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/auth")
	{
		auth.GET("/google", hb.Auth.GoogleLoginHandler)
		auth.GET("/google/callback", hb.Auth.GoogleCallbackHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "CityLinker API is running"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, uploadDir string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", uploadDir)

	RegisterCategoryRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterHealthRoute(r)
}
