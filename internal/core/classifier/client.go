package classifier

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client 外部食材影像分類服務的客戶端
// 服務本身視為黑盒：收圖片、回食材名稱與信心值
type Client struct {
	cfg    *config.Config
	client *resty.Client
}

// detectedIngredient 分類服務回傳的單筆辨識結果
type detectedIngredient struct {
	Name       string  `json:"bahan"`
	Confidence float64 `json:"confidence"`
}

// classifyResponse 分類服務的響應結構
type classifyResponse struct {
	Detected []detectedIngredient `json:"bahan_terdeteksi"`
	Error    string               `json:"error,omitempty"`
}

// NewClient 創建分類服務客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Classifier.BaseURL).
		SetTimeout(cfg.Classifier.Timeout)

	return &Client{
		cfg:    cfg,
		client: client,
	}
}

// Classify 上傳圖片並回傳辨識出的食材
// 信心值低於設定下限的結果會被過濾，結果數量以 MaxResults 為上限
func (c *Client) Classify(ctx context.Context, image []byte, filename string) ([]common.ClassifiedIngredient, error) {
	if len(image) == 0 {
		return nil, common.NewValidationError("image data is empty")
	}
	if filename == "" {
		filename = "image.jpg"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(image)).
		Post("/klasifikasi_gambar")
	if err != nil {
		return nil, fmt.Errorf("failed to call classifier service: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("分類服務回傳錯誤",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return nil, fmt.Errorf("classifier service returned status %d", resp.StatusCode())
	}

	var result classifyResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("classifier service error: %s", result.Error)
	}

	ingredients := make([]common.ClassifiedIngredient, 0, len(result.Detected))
	for _, d := range result.Detected {
		if d.Confidence < c.cfg.Classifier.MinConfidence {
			continue
		}
		ingredients = append(ingredients, common.ClassifiedIngredient{
			Name:       d.Name,
			Confidence: d.Confidence,
		})
		if c.cfg.Classifier.MaxResults > 0 && len(ingredients) >= c.cfg.Classifier.MaxResults {
			break
		}
	}

	common.LogInfo("影像分類完成",
		zap.Int("detected", len(result.Detected)),
		zap.Int("retained", len(ingredients)),
	)
	return ingredients, nil
}
