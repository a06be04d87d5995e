package common

import (
	"strings"
)

// RecipeRecord 資料集中的一筆食譜
// Title 與 Ingredients 為必要欄位，其餘欄位保留在 Attributes 中
type RecipeRecord struct {
	Title       string            `json:"title"`
	Ingredients string            `json:"ingredients"`
	Loves       float64           `json:"loves"`
	Kalori      float64           `json:"kalori"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// ScoredRecipe 附帶相似度分數的食譜，分數範圍 [0,1]
type ScoredRecipe struct {
	RecipeRecord
	Score float64 `json:"score"`
}

// ClassifiedIngredient 影像分類服務辨識出的食材
// Canonical 為對應到詞彙表後的標準名稱，無法對應時為空
type ClassifiedIngredient struct {
	Name       string  `json:"name"`
	Canonical  string  `json:"canonical,omitempty"`
	Confidence float64 `json:"confidence"`
}

// NormalizeIngredientNames 去除空白與空字串，保留原始順序
func NormalizeIngredientNames(names []string) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	return result
}
