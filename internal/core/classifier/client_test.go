package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-recommender/internal/infrastructure/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Classifier: config.ClassifierConfig{
			Enabled:       true,
			BaseURL:       baseURL,
			Timeout:       5 * time.Second,
			MinConfidence: 0.5,
			MaxResults:    3,
		},
	}
}

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/klasifikasi_gambar" {
			t.Errorf("path = %s, want /klasifikasi_gambar", r.URL.Path)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing multipart field file: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bahan_terdeteksi":[
			{"bahan":"Tomat","confidence":0.93},
			{"bahan":"Wortel","confidence":0.71},
			{"bahan":"Kentang","confidence":0.31}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	got, err := client.Classify(context.Background(), []byte("fake-image"), "photo.jpg")
	if err != nil {
		t.Fatal(err)
	}

	// Kentang is below the 0.5 confidence floor
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Tomat" || got[1].Name != "Wortel" {
		t.Errorf("names = [%s %s], want [Tomat Wortel]", got[0].Name, got[1].Name)
	}
	if got[0].Confidence != 0.93 {
		t.Errorf("confidence = %f, want 0.93", got[0].Confidence)
	}
}

func TestClassifyMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bahan_terdeteksi":[
			{"bahan":"Tomat","confidence":0.9},
			{"bahan":"Wortel","confidence":0.9},
			{"bahan":"Kentang","confidence":0.9},
			{"bahan":"Kol","confidence":0.9}
		]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Classifier.MaxResults = 2
	client := NewClient(cfg)

	got, err := client.Classify(context.Background(), []byte("fake-image"), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want MaxResults=2 cap applied", len(got))
	}
}

func TestClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"model failure"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	if _, err := client.Classify(context.Background(), []byte("fake-image"), ""); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestClassifyServiceReportedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"Tidak ada file gambar"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	if _, err := client.Classify(context.Background(), []byte("fake-image"), ""); err == nil {
		t.Error("expected error for service-reported failure")
	}
}

func TestClassifyEmptyImage(t *testing.T) {
	client := NewClient(testConfig("http://localhost:0"))
	if _, err := client.Classify(context.Background(), nil, ""); err == nil {
		t.Error("expected error for empty image")
	}
}
