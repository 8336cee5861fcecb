package v1

import (
	"net/http"
	"time"

	"go-benefit-recommender/config"
	"go-benefit-recommender/internal/delivery/http/middleware"
	"go-benefit-recommender/internal/delivery/http/response"
	"go-benefit-recommender/internal/domain"
	"go-benefit-recommender/internal/usecase"
	"go-benefit-recommender/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	SuggestionUC domain.SuggestionUsecase
	HealthUC     usecase.HealthUsecase
	// Optional; rate limits fall back to process memory when nil
	Redis  *goredis.Client
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := map[string]string{"status": "ok"}
		if deps.HealthUC != nil {
			status = deps.HealthUC.Check(c.Request.Context())
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := v1.Group("")
	api.Use(middleware.SecurityHeadersMiddleware())
	api.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
		deps.Redis,
	)))
	{
		NewSuggestionHandler(api, deps.SuggestionUC)
	}

	return r
}
