package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/Govind-619/storefront/controllers"
	"github.com/Govind-619/storefront/middleware"
	"github.com/Govind-619/storefront/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// HealthCheck reports a dependency's reachability.
type HealthCheck func(ctx context.Context) error

type Options struct {
	SessionSecret  string
	JWTSecret      string
	SecureCookies  bool
	AllowedOrigins []string
	Checks         map[string]HealthCheck
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(ctl *controllers.Controller, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		utils.RequestIDMiddleware(),
		utils.LoggerMiddleware(),
		utils.RecoveryMiddleware(),
		utils.CORSMiddleware(opts.AllowedOrigins),
		utils.SecurityHeadersMiddleware(),
	)

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24 * 30,
		Path:     "/",
		Secure:   opts.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("storefront", store))

	router.GET("/health", health(opts.Checks))

	api := router.Group("/v1")
	api.Use(middleware.SessionID(), middleware.OptionalAuth(opts.JWTSecret), ctl.SessionScope())
	{
		initShopperRoutes(api, ctl)
		initAdminRoutes(api, ctl, opts.JWTSecret)
	}

	return router
}

func health(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				utils.LogError("Health check %s failed: %v", name, err)
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		if status != http.StatusOK {
			utils.Error(c, status, utils.ErrServiceUnavailable, results)
			return
		}
		utils.Success(c, "ok", results)
	}
}
