package server

import (
	"net/http"

	"asset-register/internal/config"
	"asset-register/internal/handlers"
	"asset-register/internal/middleware"
	"asset-register/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode, MaxAge: 12 * 3600})
	r.Use(sessions.Sessions("asset_session", store))

	r.Use(middleware.InjectUser())

	// AUTH
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())
	staff := middleware.RequireStaff()

	auth.GET("/me", handlers.Me)

	// COMPANIES
	auth.GET("/companies", handlers.ListCompanies)
	auth.GET("/companies/:id", handlers.GetCompany)
	auth.POST("/companies", staff, handlers.CreateCompany)
	auth.PUT("/companies/:id", staff, handlers.UpdateCompany)
	auth.DELETE("/companies/:id", staff, handlers.DeleteCompany)

	// DEPOTS
	auth.GET("/depots", handlers.ListDepots)
	auth.GET("/depots/:code", handlers.GetDepot)
	auth.POST("/depots", staff, handlers.CreateDepot)
	auth.PUT("/depots/:code", staff, handlers.UpdateDepot)
	auth.DELETE("/depots/:code", staff, handlers.DeleteDepot)

	// ASSET CLASSES
	auth.GET("/asset-classes", handlers.ListAssetClasses)
	auth.GET("/asset-classes/:id", handlers.GetAssetClass)
	auth.POST("/asset-classes", staff, handlers.CreateAssetClass)
	auth.PUT("/asset-classes/:id", staff, handlers.UpdateAssetClass)
	auth.DELETE("/asset-classes/:id", staff, handlers.DeleteAssetClass)

	// ASSETS
	auth.GET("/assets", handlers.ListAssets)
	auth.GET("/assets/:id", handlers.GetAsset)
	auth.POST("/assets", staff, handlers.CreateAsset)
	auth.PUT("/assets/:id", staff, handlers.UpdateAsset)
	auth.DELETE("/assets/:id", staff, handlers.DeleteAsset)

	auth.PUT("/assets/:id/status", staff, handlers.SetAssetStatus)
	auth.POST("/assets/:id/dispose",
		middleware.RequirePermission(models.PermDisposeAsset),
		handlers.DisposeAsset,
	)
	auth.POST("/assets/:id/transfer",
		middleware.RequirePermission(models.PermTransferAsset),
		handlers.TransferAsset,
	)

	// DEPRECIATION
	auth.GET("/assets/:id/depreciation", handlers.ListDepreciation)
	auth.POST("/assets/:id/depreciation", staff, handlers.RecordDepreciation)
	auth.POST("/assets/:id/depreciate", staff, handlers.DepreciateAsset)

	// AUDIT
	auth.GET("/audit", staff, handlers.ListAuditLogs)

	// USERS
	admin := auth.Group("/users")
	admin.Use(middleware.RequireSuperuser())
	admin.GET("", handlers.ListUsers)
	admin.POST("", handlers.CreateUser)
	admin.PUT("/:id/password", handlers.SetPassword)
	admin.POST("/:id/permissions", handlers.GrantPermission)
	admin.DELETE("/:id/permissions/:codename", handlers.RevokePermission)
	admin.DELETE("/:id", handlers.DeleteUser)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
