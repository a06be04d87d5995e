package api

import (
	"context"
	"net/http"
	"time"

	"recipe-recommender/internal/api/handlers/health"
	recipeHandler "recipe-recommender/internal/api/handlers/recipe"
	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/classifier"
	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 單一請求的處理超時：排序掃描本身有上界，這裡屬防禦性設置
	timeoutDuration = 30 * time.Second
)

// SetupRouter 設置路由
// 推薦服務由呼叫端建立並完成初始化後傳入，語料載入先於對外服務
func SetupRouter(cfg *config.Config, svc *recommend.Service, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Image.MaxSizeBytes))

	// 請求去重
	router.Use(middleware.Deduplication(cfg))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
		}
	})

	// 初始化影像分類客戶端
	var cls *classifier.Client
	if cfg.Classifier.Enabled {
		cls = classifier.NewClient(cfg)
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", store != nil),
		zap.Bool("classifier_enabled", cls != nil),
		zap.Bool("recommender_ready", svc.IsReady()),
		zap.Int("recipes", svc.RecipeCount()),
	)

	handler := recipeHandler.NewHandler(cfg, svc, cls, store)

	// 健康檢查路由
	router.GET("/health", health.HealthCheck(cfg, svc))
	router.GET("/ready", health.ReadinessCheck(svc))
	router.GET("/live", health.LivenessCheck())

	// API 路由組
	api := router.Group("/api/v1")
	{
		// 食譜推薦
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/recommend", handler.HandleRecommend)
			recipeGroup.POST("/recommend-by-image", handler.HandleRecommendByImage)
		}

		// 食材
		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("", handler.HandleListIngredients)
			ingredientGroup.POST("/classify", handler.HandleClassify)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Image.MaxSizeBytes),
	)

	return router, nil
}
