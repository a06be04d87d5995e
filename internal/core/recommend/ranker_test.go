package recommend

import (
	"math"
	"testing"

	"recipe-recommender/internal/pkg/common"
)

// testCorpus builds a corpus over testVocabulary dimensions from raw vectors.
func testCorpus(titles []string, vectors [][]float64) *Corpus {
	corpus := &Corpus{}
	for i, title := range titles {
		corpus.Records = append(corpus.Records, common.RecipeRecord{Title: title, Ingredients: title})
		corpus.Matrix = append(corpus.Matrix, vectors[i])
	}
	return corpus
}

func TestRankZeroQueryShortCircuits(t *testing.T) {
	corpus := testCorpus(
		[]string{"A", "B"},
		[][]float64{{1, 1, 1}, {1, 0, 0}},
	)
	got := NewRanker(0).Rank([]float64{0, 0, 0}, corpus, 10)
	if len(got) != 0 {
		t.Fatalf("zero query returned %d results, want 0", len(got))
	}
}

func TestRankScenario(t *testing.T) {
	// Recipe A = {Tomato, Onion, Garlic}, recipe B = {Tomato},
	// query = {Tomato, Garlic}. A must rank above B.
	corpus := testCorpus(
		[]string{"A", "B"},
		[][]float64{{1, 1, 1}, {1, 0, 0}},
	)
	got := NewRanker(0).Rank([]float64{1, 0, 1}, corpus, 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "A" || got[1].Title != "B" {
		t.Fatalf("order = [%s %s], want [A B]", got[0].Title, got[1].Title)
	}

	wantA := 2 / (math.Sqrt(3) * math.Sqrt(2)) // ~0.816
	wantB := 1 / (math.Sqrt(1) * math.Sqrt(2)) // ~0.707
	if math.Abs(got[0].Score-wantA) > 1e-9 {
		t.Errorf("score(A) = %f, want %f", got[0].Score, wantA)
	}
	if math.Abs(got[1].Score-wantB) > 1e-9 {
		t.Errorf("score(B) = %f, want %f", got[1].Score, wantB)
	}
}

func TestRankScoreBounds(t *testing.T) {
	corpus := testCorpus(
		[]string{"A", "B", "C"},
		[][]float64{{1, 1, 1}, {1, 0, 0}, {0, 1, 1}},
	)
	got := NewRanker(0).Rank([]float64{1, 1, 0}, corpus, 10)
	for _, r := range got {
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("score(%s) = %f, out of [0,1]", r.Title, r.Score)
		}
	}
}

func TestRankFiltersZeroOverlap(t *testing.T) {
	corpus := testCorpus(
		[]string{"match", "disjoint", "empty"},
		[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 0}},
	)
	got := NewRanker(0).Rank([]float64{1, 0, 1}, corpus, 10)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (disjoint and empty rows filtered)", len(got))
	}
	if got[0].Title != "match" {
		t.Errorf("kept %q, want %q", got[0].Title, "match")
	}
}

func TestRankZeroNormRowIsNotAnError(t *testing.T) {
	// A recipe with no recognizable ingredients must score 0, not divide by zero
	corpus := testCorpus(
		[]string{"empty"},
		[][]float64{{0, 0, 0}},
	)
	got := NewRanker(0).Rank([]float64{1, 1, 1}, corpus, 10)
	if len(got) != 0 {
		t.Fatalf("zero-norm row produced results: %v", got)
	}
}

func TestRankTopNCap(t *testing.T) {
	corpus := testCorpus(
		[]string{"A", "B", "C", "D"},
		[][]float64{{1, 1, 1}, {1, 1, 0}, {1, 0, 0}, {0, 1, 1}},
	)
	ranker := NewRanker(0)
	query := []float64{1, 1, 1}

	for _, topN := range []int{1, 2, 3, 10} {
		got := ranker.Rank(query, corpus, topN)
		if len(got) > topN {
			t.Errorf("topN=%d returned %d results", topN, len(got))
		}
	}
}

func TestRankSortedDescending(t *testing.T) {
	corpus := testCorpus(
		[]string{"A", "B", "C"},
		[][]float64{{1, 0, 0}, {1, 1, 1}, {1, 1, 0}},
	)
	got := NewRanker(0).Rank([]float64{1, 1, 1}, corpus, 10)
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("results not descending at %d: %f > %f", i, got[i].Score, got[i-1].Score)
		}
	}
}

func TestRankStableTieOrder(t *testing.T) {
	// Identical vectors score identically; corpus order must be preserved
	corpus := testCorpus(
		[]string{"first", "second", "third"},
		[][]float64{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}},
	)
	got := NewRanker(0).Rank([]float64{1, 0, 0}, corpus, 10)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []string{"first", "second", "third"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestRankMonotonicOverlap(t *testing.T) {
	// Superset of the query's matched dimensions never scores below a subset
	corpus := testCorpus(
		[]string{"superset", "subset"},
		[][]float64{{1, 1, 1}, {1, 0, 0}},
	)
	got := NewRanker(0).Rank([]float64{1, 1, 1}, corpus, 10)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "superset" {
		t.Errorf("superset ranked below subset: %v", got)
	}
	if got[0].Score < got[1].Score {
		t.Errorf("superset score %f < subset score %f", got[0].Score, got[1].Score)
	}
}

func TestRankThresholdKeepsGenuineLowScores(t *testing.T) {
	// The threshold removes float noise, not genuinely low overlap
	corpus := testCorpus(
		[]string{"weak"},
		[][]float64{{1, 1, 1}},
	)
	got := NewRanker(defaultScoreThreshold).Rank([]float64{1, 0, 0}, corpus, 10)
	if len(got) != 1 {
		t.Fatalf("genuinely overlapping recipe was filtered: %v", got)
	}
}
