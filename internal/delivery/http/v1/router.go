package v1

import (
	"net/http"

	"go-dogwalking-backend/config"
	"go-dogwalking-backend/internal/delivery/http/middleware"
	"go-dogwalking-backend/internal/delivery/http/response"
	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	WalkerUC     domain.WalkerUsecase
	MatchUC      domain.MatchUsecase
	JWKSProvider *auth.Provider
	Config       *config.Config
	Validate     *validator.Validate
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware(deps.Config))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, deps.Config)
		NewWalkerHandler(v1, protected, deps.WalkerUC)
		NewMatchHandler(protected, deps.MatchUC, deps.Validate, deps.Config)
		NewUploadHandler(protected, deps.Config)
	}

	return r
}
