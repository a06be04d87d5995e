package recommend

import (
	"fmt"
	"strings"
)

// defaultNames 35 種標準食材名稱，順序即向量維度，載入語料後不可變動
var defaultNames = []string{
	"Bawang Bombai", "Bawang Merah", "Bawang Putih", "Brokoli", "Cabai Hijau", "Cabai Merah",
	"Daging Sapi", "Daging Unggas", "Ikan", "Jagung", "Jahe", "Jamur", "Kacang Hijau",
	"Kacang Merah", "Kacang Panjang", "Kacang Tanah", "Kembang Kol", "Kentang", "Kikil",
	"Kol", "Labu Siam", "Mie", "Nasi", "Petai", "Sawi", "Selada", "Seledri",
	"Telur Ayam", "Telur Bebek", "Tempe", "Terong", "Timun", "Tomat", "Usus", "Wortel",
}

// defaultKeywords 標準名稱對應的小寫關鍵字，含地方性同義詞
var defaultKeywords = map[string][]string{
	"Bawang Bombai":  {"bawang bombay", "bombay"},
	"Bawang Merah":   {"bawang merah"},
	"Bawang Putih":   {"bawang putih"},
	"Brokoli":        {"brokoli"},
	"Cabai Hijau":    {"cabai hijau", "cabe hijau"},
	"Cabai Merah":    {"cabai merah", "cabe merah"},
	"Daging Sapi":    {"daging sapi", "sapi"},
	"Daging Unggas":  {"daging unggas", "ayam", "itik", "bebek"},
	"Ikan":           {"ikan", "tongkol", "lele", "gurame"},
	"Jagung":         {"jagung"},
	"Jahe":           {"jahe"},
	"Jamur":          {"jamur", "jamur tiram", "jamur kancing"},
	"Kacang Hijau":   {"kacang hijau", "kacang ijo"},
	"Kacang Merah":   {"kacang merah"},
	"Kacang Panjang": {"kacang panjang"},
	"Kacang Tanah":   {"kacang tanah"},
	"Kembang Kol":    {"kembang kol"},
	"Kentang":        {"kentang"},
	"Kikil":          {"kikil"},
	"Kol":            {"kol", "kubis"},
	"Labu Siam":      {"labu siam", "labu jipang"},
	"Mie":            {"mie", "mi", "bakmi"},
	"Nasi":           {"nasi"},
	"Petai":          {"petai", "pete"},
	"Sawi":           {"sawi", "sawi hijau", "caisim", "pakcoy"},
	"Selada":         {"selada"},
	"Seledri":        {"seledri"},
	"Telur Ayam":     {"telur ayam", "telur"},
	"Telur Bebek":    {"telur bebek"},
	"Tempe":          {"tempe", "tempeh"},
	"Terong":         {"terong", "terung"},
	"Timun":          {"timun", "ketimun"},
	"Tomat":          {"tomat"},
	"Usus":           {"usus", "usus ayam"},
	"Wortel":         {"wortel"},
}

// Vocabulary 固定順序的標準食材詞彙表與關鍵字對照
// 名稱順序定義向量索引，詞彙表建立後即視為唯讀
type Vocabulary struct {
	names    []string
	keywords map[string][]string
	index    map[string]int
}

// NewVocabulary 建立詞彙表
// keywords 中缺漏的名稱以其小寫形式作為唯一關鍵字
func NewVocabulary(names []string, keywords map[string][]string) (*Vocabulary, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("vocabulary requires at least one canonical name")
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("canonical name at position %d is empty", i)
		}
		if _, exists := index[name]; exists {
			return nil, fmt.Errorf("duplicate canonical name: %s", name)
		}
		index[name] = i
	}

	return &Vocabulary{
		names:    names,
		keywords: keywords,
		index:    index,
	}, nil
}

// DefaultVocabulary 回傳正式環境使用的 35 項詞彙表
func DefaultVocabulary() *Vocabulary {
	vocab, err := NewVocabulary(defaultNames, defaultKeywords)
	if err != nil {
		// 內建表固定不變，建構失敗屬程式錯誤
		panic(err)
	}
	return vocab
}

// Size 詞彙表長度，即向量維度
func (v *Vocabulary) Size() int {
	return len(v.names)
}

// Names 依索引順序回傳所有標準名稱
func (v *Vocabulary) Names() []string {
	return v.names
}

// IndexOf 回傳標準名稱的向量索引，未登錄時回傳 -1
func (v *Vocabulary) IndexOf(name string) int {
	if i, ok := v.index[name]; ok {
		return i
	}
	return -1
}

// Contains 檢查標準名稱是否存在於詞彙表
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Keywords 回傳標準名稱登錄的關鍵字
// 未登錄任何關鍵字時以名稱本身的小寫形式作為後備
func (v *Vocabulary) Keywords(name string) []string {
	if kws, ok := v.keywords[name]; ok && len(kws) > 0 {
		return kws
	}
	return []string{strings.ToLower(name)}
}
