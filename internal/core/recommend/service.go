package recommend

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜推薦服務
//
// 生命週期為「一次建表、多次查詢」：Init 成功後語料唯讀，
// 查詢不寫入任何共享狀態，可直接併發呼叫而不需額外鎖。
// mu 僅保護 ready/initErr 與語料指標的發佈。
type Service struct {
	cfg        *config.Config
	vocab      *Vocabulary
	extractor  *Extractor
	vectorizer *Vectorizer
	ranker     *Ranker

	mu      sync.RWMutex
	corpus  *Corpus
	ready   bool
	initErr error
}

// NewService 建立推薦服務，使用內建詞彙表
func NewService(cfg *config.Config) *Service {
	return NewServiceWithVocabulary(cfg, DefaultVocabulary())
}

// NewServiceWithVocabulary 以指定詞彙表建立推薦服務
func NewServiceWithVocabulary(cfg *config.Config, vocab *Vocabulary) *Service {
	return &Service{
		cfg:        cfg,
		vocab:      vocab,
		extractor:  NewExtractor(vocab),
		vectorizer: NewVectorizer(vocab),
		ranker:     NewRanker(cfg.Recommend.ScoreThreshold),
	}
}

// Init 載入資料集並建立食譜向量矩陣
// 已就緒時重複呼叫為 no-op；失敗時服務維持未就緒並記錄原因
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	start := time.Now()
	file, err := os.Open(s.cfg.Dataset.Path)
	if err != nil {
		s.initErr = fmt.Errorf("failed to open dataset: %w", err)
		common.LogError("資料集開啟失敗",
			zap.String("path", s.cfg.Dataset.Path),
			zap.Error(err),
		)
		return s.initErr
	}
	defer file.Close()

	corpus, err := LoadCorpus(file, s.vocab)
	if err != nil {
		s.initErr = fmt.Errorf("failed to load corpus: %w", err)
		common.LogError("語料載入失敗",
			zap.String("path", s.cfg.Dataset.Path),
			zap.Error(err),
		)
		return s.initErr
	}

	s.corpus = corpus
	s.ready = true
	s.initErr = nil

	common.LogInfo("推薦服務初始化完成",
		zap.Int("recipes", corpus.Size()),
		zap.Int("vocabulary", s.vocab.Size()),
		zap.Duration("耗時", time.Since(start)),
	)
	return nil
}

// IsReady 服務是否已完成語料載入
func (s *Service) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// InitError 最近一次初始化失敗的原因，成功或尚未初始化時為 nil
func (s *Service) InitError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initErr
}

// RecipeCount 語料中的食譜數量，未就緒時為 0
func (s *Service) RecipeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.corpus == nil {
		return 0
	}
	return s.corpus.Size()
}

// Vocabulary 回傳服務使用的詞彙表
func (s *Service) Vocabulary() *Vocabulary {
	return s.vocab
}

// CanonicalizeText 將自由文字對應到標準食材名稱
// 供影像分類結果等外部來源在查詢前做正規化
func (s *Service) CanonicalizeText(raw string) []string {
	return s.extractor.Extract(raw)
}

// GetRecommendations 依食材名稱回傳相似度遞減的食譜列表
//
// 前置條件為服務已就緒；未就緒或輸入為空時回傳空列表而非錯誤，
// 呼叫端應以 IsReady 區分「無推薦結果」與「服務不可用」。
// 名稱需為標準名稱（大小寫一致），無法對應者會被忽略。
func (s *Service) GetRecommendations(ctx context.Context, ingredientNames []string, topN int) []common.ScoredRecipe {
	s.mu.RLock()
	corpus := s.corpus
	ready := s.ready
	s.mu.RUnlock()

	if !ready || corpus == nil {
		common.LogWarn("推薦服務尚未就緒，回傳空結果")
		return nil
	}
	if len(ingredientNames) == 0 {
		return nil
	}

	if topN <= 0 {
		topN = s.cfg.Recommend.DefaultTopN
	}
	if s.cfg.Recommend.MaxTopN > 0 && topN > s.cfg.Recommend.MaxTopN {
		topN = s.cfg.Recommend.MaxTopN
	}

	query := s.vectorizer.Vectorize(ingredientNames)
	results := s.ranker.Rank(query, corpus, topN)

	common.LogDebug("推薦查詢完成",
		zap.Strings("ingredients", ingredientNames),
		zap.Int("top_n", topN),
		zap.Int("results", len(results)),
	)
	return results
}
