package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/movement_tracker/cmd/docs"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/middleware"
	"github.com/SscSPs/movement_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes. metrics serves /metrics
// and may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metrics http.Handler,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}
	apiLimiter, err := middleware.NewMemoryLimiter(cfg.APIRateLimit)
	if err != nil {
		return fmt.Errorf("invalid API_RATE_LIMIT %q: %w", cfg.APIRateLimit, err)
	}

	public := r.Group("/api/v1")
	loginLimit := middleware.RateLimit(loginLimiter)
	registerAuthRoutes(public, services, loginLimit)
	registerGoogleOAuthRoutes(public, services, loginLimit)

	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(apiLimiter))
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to
// the per-resource registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiLimit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		apiLimit,
		middleware.RequireCaller(services.User),
	)

	registerUserRoutes(v1, services.User, services.Area)
	registerAreaRoutes(v1, services.Area, services.BankAccount)
	registerMovementRoutes(v1, services.Movement)
	registerAttachmentRoutes(v1, services.Attachment)
	registerDraftRoutes(v1, services.Draft)
	registerReportingRoutes(v1, services.Reporting, cfg.DefaultCurrency)

	admin := v1.Group("/admin", middleware.RequireVerified(), middleware.RequireAdmin())
	registerUserAdminRoutes(admin, services.User)
	registerAreaAdminRoutes(admin, services.Area)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
