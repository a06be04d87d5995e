package recommend

// Vectorizer 將標準食材名稱列表轉換為詞彙表索引的二元向量
type Vectorizer struct {
	vocab *Vocabulary
}

// NewVectorizer 建立向量化器
func NewVectorizer(vocab *Vocabulary) *Vectorizer {
	return &Vectorizer{vocab: vocab}
}

// Vectorize 產生長度為詞彙表大小的二元向量
// 名稱需與標準名稱完全一致（區分大小寫），未登錄的名稱直接忽略；
// 輸入順序不影響結果，全零向量代表沒有可辨識的食材
func (v *Vectorizer) Vectorize(names []string) []float64 {
	vector := make([]float64, v.vocab.Size())
	for _, name := range names {
		if index := v.vocab.IndexOf(name); index != -1 {
			vector[index] = 1
		}
	}
	return vector
}
