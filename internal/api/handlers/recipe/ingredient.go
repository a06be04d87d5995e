package recipe

import (
	"io"
	"net/http"

	"recipe-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClassifyResponse 影像分類結果
type ClassifyResponse struct {
	Ingredients []common.ClassifiedIngredient `json:"ingredients"`
	Count       int                           `json:"count"`
}

// RecommendByImageResponse 影像分類加推薦的合併結果
type RecommendByImageResponse struct {
	Ingredients []common.ClassifiedIngredient `json:"ingredients"`
	Recipes     []common.ScoredRecipe         `json:"recipes"`
	Count       int                           `json:"count"`
}

// readImageFile 讀取 multipart 圖片欄位並檢查大小限制
func (h *Handler) readImageFile(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image file is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return nil, "", false
	}

	if h.cfg.Image.MaxSizeBytes > 0 && fileHeader.Size > h.cfg.Image.MaxSizeBytes {
		common.LogWarn("圖片大小超出限制",
			zap.Int64("size", fileHeader.Size),
			zap.Int64("max_size", h.cfg.Image.MaxSizeBytes),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image size exceeds limit",
			"code":  common.ErrInvalidImageSize.Code,
		})
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read image",
			"code":  common.ErrCodeInternalError,
		})
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read image",
			"code":  common.ErrCodeInternalError,
		})
		return nil, "", false
	}
	return data, fileHeader.Filename, true
}

// classifyImage 呼叫外部分類服務並將結果對應到標準名稱
func (h *Handler) classifyImage(c *gin.Context, reqID string) ([]common.ClassifiedIngredient, bool) {
	if h.classifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Ingredient classification is disabled",
			"code":  common.ErrCodeServiceUnavailable,
		})
		return nil, false
	}

	image, filename, ok := h.readImageFile(c)
	if !ok {
		return nil, false
	}

	classified, err := h.classifier.Classify(c.Request.Context(), image, filename)
	if err != nil {
		common.LogError("影像分類失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Ingredient classification failed",
			"code":  common.ErrCodeClassifierError,
		})
		return nil, false
	}

	// 分類服務回傳的是自由文字名稱，透過擷取器對應到詞彙表
	for i := range classified {
		if canonical := h.service.CanonicalizeText(classified[i].Name); len(canonical) > 0 {
			classified[i].Canonical = canonical[0]
		}
	}
	return classified, true
}

// HandleClassify 圖片食材辨識
func (h *Handler) HandleClassify(c *gin.Context) {
	reqID := requestID(c)

	classified, ok := h.classifyImage(c, reqID)
	if !ok {
		return
	}

	common.LogInfo("食材辨識完成",
		zap.String("request_id", reqID),
		zap.Int("count", len(classified)),
	)
	c.JSON(http.StatusOK, ClassifyResponse{
		Ingredients: classified,
		Count:       len(classified),
	})
}

// HandleRecommendByImage 圖片食材辨識後直接推薦食譜
func (h *Handler) HandleRecommendByImage(c *gin.Context) {
	reqID := requestID(c)

	if !h.service.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Recommendation service is not ready",
			"code":  common.ErrCodeServiceNotReady,
		})
		return
	}

	classified, ok := h.classifyImage(c, reqID)
	if !ok {
		return
	}

	// 只取成功對應到詞彙表的名稱進行推薦
	var names []string
	for _, ing := range classified {
		if ing.Canonical != "" {
			names = append(names, ing.Canonical)
		}
	}

	recipes := h.service.GetRecommendations(c.Request.Context(), names, h.cfg.Recommend.DefaultTopN)
	if recipes == nil {
		recipes = []common.ScoredRecipe{}
	}

	common.LogInfo("影像推薦請求完成",
		zap.String("request_id", reqID),
		zap.Int("ingredients", len(names)),
		zap.Int("results", len(recipes)),
	)
	c.JSON(http.StatusOK, RecommendByImageResponse{
		Ingredients: classified,
		Recipes:     recipes,
		Count:       len(recipes),
	})
}
