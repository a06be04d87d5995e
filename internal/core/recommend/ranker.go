package recommend

import (
	"math"
	"sort"

	"recipe-recommender/internal/pkg/common"
)

const (
	// normEpsilon 範數下限，避免零向量相除
	normEpsilon = 1e-6
	// defaultScoreThreshold 過濾浮點雜訊產生的近零分數
	defaultScoreThreshold = 1e-5
)

// Ranker 以餘弦相似度對整個語料做暴力掃描排序
// 單次查詢成本為 O(食譜數 × 詞彙表大小)，語料規模在數千筆內不需索引
type Ranker struct {
	threshold float64
}

// NewRanker 建立排序器，threshold <= 0 時使用預設值
func NewRanker(threshold float64) *Ranker {
	if threshold <= 0 {
		threshold = defaultScoreThreshold
	}
	return &Ranker{threshold: threshold}
}

// Rank 計算查詢向量與每列食譜向量的餘弦相似度，回傳分數遞減的前 topN 筆
//
// 查詢向量為零向量時直接回傳空結果（沒有可比較的方向）；
// 分數低於門檻的食譜會被過濾；同分時保持語料原始順序（穩定排序）。
func (r *Ranker) Rank(query []float64, corpus *Corpus, topN int) []common.ScoredRecipe {
	queryNorm := vectorNorm(query)
	if queryNorm == 0 {
		// 必須在任何除法之前攔截，避免除以零
		return nil
	}
	if queryNorm < normEpsilon {
		queryNorm = normEpsilon
	}

	scored := make([]common.ScoredRecipe, 0, len(corpus.Records))
	for i, row := range corpus.Matrix {
		rowNorm := vectorNorm(row)
		if rowNorm < normEpsilon {
			rowNorm = normEpsilon
		}
		score := dot(query, row) / (rowNorm * queryNorm)
		if score <= r.threshold {
			continue
		}
		scored = append(scored, common.ScoredRecipe{
			RecipeRecord: corpus.Records[i],
			Score:        score,
		})
	}

	// 穩定排序：同分食譜維持語料順序
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// dot 內積，向量長度一致由語料建構保證
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// vectorNorm L2 範數
func vectorNorm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
