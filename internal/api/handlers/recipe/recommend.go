package recipe

import (
	"net/http"

	"recipe-recommender/internal/core/cache"
	"recipe-recommender/internal/core/classifier"
	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecommendRequest 依食材推薦食譜的請求
type RecommendRequest struct {
	Ingredients []string `json:"ingredients"`     // 標準食材名稱列表
	TopN        int      `json:"top_n,omitempty"` // 回傳筆數上限，省略時使用預設值
}

// RecommendResponse 推薦結果
type RecommendResponse struct {
	Recipes  []common.ScoredRecipe `json:"recipes"`
	Count    int                   `json:"count"`
	CacheHit bool                  `json:"cache_hit,omitempty"`
}

// Handler 食譜推薦處理程序
type Handler struct {
	cfg        *config.Config
	service    *recommend.Service
	classifier *classifier.Client
	cache      cache.Store
}

// NewHandler 創建新的食譜推薦處理程序
func NewHandler(cfg *config.Config, svc *recommend.Service, cls *classifier.Client, store cache.Store) *Handler {
	return &Handler{
		cfg:        cfg,
		service:    svc,
		classifier: cls,
		cache:      store,
	}
}

// requestID 取得或補發請求 ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
}

// HandleRecommend 依食材名稱推薦食譜
func (h *Handler) HandleRecommend(c *gin.Context) {
	reqID := requestID(c)

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	// 未就緒是服務問題，與「查無結果」明確區分
	if !h.service.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Recommendation service is not ready",
			"code":  common.ErrCodeServiceNotReady,
		})
		return
	}

	ingredients := common.NormalizeIngredientNames(req.Ingredients)
	if len(ingredients) == 0 {
		// 空輸入是合法查詢，回空列表而非錯誤
		c.JSON(http.StatusOK, RecommendResponse{Recipes: []common.ScoredRecipe{}, Count: 0})
		return
	}

	topN := req.TopN
	if topN <= 0 {
		topN = h.cfg.Recommend.DefaultTopN
	}
	if topN > h.cfg.Recommend.MaxTopN {
		topN = h.cfg.Recommend.MaxTopN
	}

	// 查詢快取
	cacheKey := cache.QueryKey(ingredients, topN)
	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
			var resp RecommendResponse
			if err := common.ParseJSON(cached, &resp); err == nil {
				resp.CacheHit = true
				c.JSON(http.StatusOK, resp)
				return
			}
			common.LogWarn("快取內容解析失敗，改走重新計算",
				zap.String("request_id", reqID),
				zap.Error(err),
			)
		}
	}

	recipes := h.service.GetRecommendations(c.Request.Context(), ingredients, topN)
	if recipes == nil {
		recipes = []common.ScoredRecipe{}
	}

	resp := RecommendResponse{
		Recipes: recipes,
		Count:   len(recipes),
	}

	// 寫入快取，失敗不影響響應
	if h.cache != nil {
		if serialized, err := common.ToJSON(resp); err == nil {
			if err := h.cache.Set(c.Request.Context(), cacheKey, serialized); err != nil {
				common.LogWarn("快取寫入失敗",
					zap.String("request_id", reqID),
					zap.Error(err),
				)
			}
		}
	}

	common.LogInfo("推薦請求完成",
		zap.String("request_id", reqID),
		zap.Int("ingredients", len(ingredients)),
		zap.Int("results", len(recipes)),
	)
	c.JSON(http.StatusOK, resp)
}

// HandleListIngredients 回傳詞彙表中的所有標準食材名稱
// 供前端食材選單使用
func (h *Handler) HandleListIngredients(c *gin.Context) {
	names := h.service.Vocabulary().Names()
	c.JSON(http.StatusOK, gin.H{
		"ingredients": names,
		"count":       len(names),
	})
}
