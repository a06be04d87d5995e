package recommend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"recipe-recommender/internal/pkg/common"
)

// 資料集必要欄位與數值欄位名稱
const (
	columnTitle       = "Title"
	columnIngredients = "Ingredients"
	columnLoves       = "Loves"
	columnKalori      = "Kalori"
)

// ErrEmptyCorpus 資料集過濾後沒有任何可用食譜
var ErrEmptyCorpus = errors.New("corpus contains no usable recipes")

// Corpus 載入完成的語料：食譜記錄與平行的向量矩陣
// Records[i] 與 Matrix[i] 一一對應，兩者不可各自排序
type Corpus struct {
	Records []common.RecipeRecord
	Matrix  [][]float64
}

// Size 語料中的食譜數量
func (c *Corpus) Size() int {
	return len(c.Records)
}

// LoadCorpus 解析 CSV 資料集並建立食譜向量矩陣
//
// 首列為標頭。缺少 Title 或 Ingredients 的資料列會被捨棄；
// Loves 與 Kalori 解析失敗時以 0 代入，單列欄位壞損不會中斷整體載入。
// 來源不可讀、標頭缺少必要欄位或過濾後無資料列時回傳錯誤。
func LoadCorpus(r io.Reader, vocab *Vocabulary) (*Corpus, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 容忍欄位數不一的資料列

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	// 建立欄位名稱到索引的對照
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	titleIdx, ok := columns[columnTitle]
	if !ok {
		return nil, fmt.Errorf("dataset is missing required column %q", columnTitle)
	}
	ingredientsIdx, ok := columns[columnIngredients]
	if !ok {
		return nil, fmt.Errorf("dataset is missing required column %q", columnIngredients)
	}

	extractor := NewExtractor(vocab)
	vectorizer := NewVectorizer(vocab)

	corpus := &Corpus{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse dataset row: %w", err)
		}

		record, ok := buildRecord(columns, row, titleIdx, ingredientsIdx)
		if !ok {
			continue
		}

		// 以原始食材文字建立該列的食譜向量
		ingredients := extractor.Extract(record.Ingredients)
		vector := vectorizer.Vectorize(ingredients)

		corpus.Records = append(corpus.Records, record)
		corpus.Matrix = append(corpus.Matrix, vector)
	}

	if len(corpus.Records) == 0 {
		return nil, ErrEmptyCorpus
	}
	return corpus, nil
}

// buildRecord 將單一資料列轉換為食譜記錄，必要欄位缺漏時回傳 false
func buildRecord(columns map[string]int, row []string, titleIdx, ingredientsIdx int) (common.RecipeRecord, bool) {
	title := fieldAt(row, titleIdx)
	ingredients := fieldAt(row, ingredientsIdx)
	if title == "" || ingredients == "" {
		return common.RecipeRecord{}, false
	}

	record := common.RecipeRecord{
		Title:       title,
		Ingredients: ingredients,
	}
	if idx, ok := columns[columnLoves]; ok {
		record.Loves = parseNumeric(fieldAt(row, idx))
	}
	if idx, ok := columns[columnKalori]; ok {
		record.Kalori = parseNumeric(fieldAt(row, idx))
	}

	// 其餘欄位全部收進開放屬性，避免綁死資料集格式
	for name, idx := range columns {
		switch name {
		case columnTitle, columnIngredients, columnLoves, columnKalori:
			continue
		}
		if value := fieldAt(row, idx); value != "" {
			if record.Attributes == nil {
				record.Attributes = make(map[string]string)
			}
			record.Attributes[name] = value
		}
	}
	return record, true
}

// fieldAt 讀取欄位值，資料列過短時視為空字串
func fieldAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseNumeric 解析數值欄位，失敗時以 0 代入
func parseNumeric(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
