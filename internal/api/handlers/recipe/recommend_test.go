package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"recipe-recommender/internal/core/recommend"
	"recipe-recommender/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

const handlerDataset = `Title,Ingredients,Loves,Kalori
Sayur Lengkap,"tomat, bawang merah, wortel",10,200
Tomat Saja,tomat,5,80
`

func testConfig(t *testing.T, dataset string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(dataset), 0644); err != nil {
		t.Fatal(err)
	}
	return &config.Config{
		Dataset: config.DatasetConfig{Path: path},
		Recommend: config.RecommendConfig{
			DefaultTopN:    10,
			MaxTopN:        50,
			ScoreThreshold: 0.00001,
		},
	}
}

func newTestRouter(t *testing.T, svc *recommend.Service, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(cfg, svc, nil, nil)
	router.POST("/api/v1/recipes/recommend", handler.HandleRecommend)
	router.GET("/api/v1/ingredients", handler.HandleListIngredients)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleRecommend(t *testing.T) {
	cfg := testConfig(t, handlerDataset)
	svc := recommend.NewService(cfg)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	router := newTestRouter(t, svc, cfg)

	w := postJSON(t, router, "/api/v1/recipes/recommend", RecommendRequest{
		Ingredients: []string{"Tomat", "Bawang Merah"},
		TopN:        5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp RecommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	if resp.Recipes[0].Title != "Sayur Lengkap" {
		t.Errorf("top recipe = %q, want Sayur Lengkap", resp.Recipes[0].Title)
	}
	if resp.Recipes[0].Score <= resp.Recipes[1].Score {
		t.Error("results not sorted descending by score")
	}
}

func TestHandleRecommendEmptyIngredients(t *testing.T) {
	cfg := testConfig(t, handlerDataset)
	svc := recommend.NewService(cfg)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	router := newTestRouter(t, svc, cfg)

	// Empty input is a valid query answered with an empty list
	w := postJSON(t, router, "/api/v1/recipes/recommend", RecommendRequest{Ingredients: nil})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp RecommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 0 || len(resp.Recipes) != 0 {
		t.Errorf("count = %d, want 0", resp.Count)
	}
}

func TestHandleRecommendServiceNotReady(t *testing.T) {
	cfg := testConfig(t, handlerDataset)
	cfg.Dataset.Path = "/nonexistent/dataset.csv"
	svc := recommend.NewService(cfg)
	_ = svc.Init(context.Background()) // fails, service stays unready
	router := newTestRouter(t, svc, cfg)

	w := postJSON(t, router, "/api/v1/recipes/recommend", RecommendRequest{
		Ingredients: []string{"Tomat"},
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["code"] != "SERVICE_NOT_READY" {
		t.Errorf("code = %q, want SERVICE_NOT_READY", resp["code"])
	}
}

func TestHandleRecommendInvalidBody(t *testing.T) {
	cfg := testConfig(t, handlerDataset)
	svc := recommend.NewService(cfg)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	router := newTestRouter(t, svc, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/recommend", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleListIngredients(t *testing.T) {
	cfg := testConfig(t, handlerDataset)
	svc := recommend.NewService(cfg)
	router := newTestRouter(t, svc, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ingredients", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Ingredients []string `json:"ingredients"`
		Count       int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 35 || len(resp.Ingredients) != 35 {
		t.Errorf("count = %d, want 35", resp.Count)
	}
}
