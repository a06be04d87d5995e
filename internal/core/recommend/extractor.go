package recommend

import (
	"strings"
)

// Extractor 將自由文字中的食材敘述對應到詞彙表的標準名稱
//
// 比對方式為小寫子字串比對：只要任一關鍵字出現在文字中即視為命中。
// 已知限制：過短的關鍵字可能誤中無關的長字（例如 "mi" 會命中 "minyak"）。
// 這是沿用既有資料集驗證過的行為，改成斷詞精確比對會改變排序結果，
// 故保留原語意不做修正。
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor 建立擷取器
func NewExtractor(vocab *Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract 擷取文字中出現的標準食材名稱
// 回傳結果依詞彙表順序排列且不重複，空白或無法辨識的輸入回傳空結果
func (e *Extractor) Extract(raw string) []string {
	if raw == "" {
		return nil
	}
	normalized := strings.ToLower(raw)

	var found []string
	for _, name := range e.vocab.Names() {
		for _, keyword := range e.vocab.Keywords(name) {
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				found = append(found, name)
				break // 單一名稱命中一個關鍵字即可
			}
		}
	}
	return found
}
