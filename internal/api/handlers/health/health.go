package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Version     string                 `json:"version"`
	Runtime     map[string]interface{} `json:"runtime"`
	Recommender *RecommenderStatus     `json:"recommender,omitempty"`
}

// RecommenderStatus 推薦引擎狀態
type RecommenderStatus struct {
	Ready          bool   `json:"ready"`
	Recipes        int    `json:"recipes"`
	VocabularySize int    `json:"vocabulary_size"`
	InitError      string `json:"init_error,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(cfg *config.Config, svc *recommend.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 獲取運行時信息
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		// 構建響應
		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Version:   cfg.App.Version,
			Runtime: map[string]interface{}{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]interface{}{
					"alloc":       m.Alloc,
					"total_alloc": m.TotalAlloc,
					"sys":         m.Sys,
					"num_gc":      m.NumGC,
				},
			},
		}

		// 推薦引擎狀態
		status := &RecommenderStatus{
			Ready:          svc.IsReady(),
			Recipes:        svc.RecipeCount(),
			VocabularySize: svc.Vocabulary().Size(),
		}
		if err := svc.InitError(); err != nil {
			status.InitError = err.Error()
		}
		response.Recommender = status

		// 記錄請求
		common.LogInfo("Health check request",
			zap.String("client_ip", c.ClientIP()),
			zap.String("path", c.Request.URL.Path),
		)

		c.JSON(http.StatusOK, response)
	}
}

// ReadinessCheck 就緒檢查處理器
// 語料載入失敗時回報 503，讓呼叫端能區分「無推薦結果」與「服務不可用」
func ReadinessCheck(svc *recommend.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !svc.IsReady() {
			resp := gin.H{
				"status": "not_ready",
				"code":   common.ErrCodeServiceNotReady,
			}
			if err := svc.InitError(); err != nil {
				resp["reason"] = err.Error()
			}
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"recipes": svc.RecipeCount(),
		})
	}
}

// LivenessCheck 存活檢查處理器
func LivenessCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "alive",
		})
	}
}
