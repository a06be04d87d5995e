package recommend

import (
	"testing"
)

func TestDefaultVocabularySize(t *testing.T) {
	vocab := DefaultVocabulary()
	if vocab.Size() != 35 {
		t.Fatalf("Size() = %d, want 35", vocab.Size())
	}
}

func TestDefaultVocabularyIndexIsStable(t *testing.T) {
	vocab := DefaultVocabulary()
	// Vector index is defined by name order
	for i, name := range vocab.Names() {
		if got := vocab.IndexOf(name); got != i {
			t.Errorf("IndexOf(%q) = %d, want %d", name, got, i)
		}
	}
}

func TestIndexOfUnknown(t *testing.T) {
	vocab := DefaultVocabulary()
	if got := vocab.IndexOf("Keju"); got != -1 {
		t.Errorf("IndexOf(unknown) = %d, want -1", got)
	}
}

func TestEveryNameHasKeywords(t *testing.T) {
	vocab := DefaultVocabulary()
	for _, name := range vocab.Names() {
		if len(vocab.Keywords(name)) == 0 {
			t.Errorf("Keywords(%q) is empty", name)
		}
	}
}

func TestKeywordsFallbackToLowercaseName(t *testing.T) {
	vocab, err := NewVocabulary([]string{"Tomato"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	kws := vocab.Keywords("Tomato")
	if len(kws) != 1 || kws[0] != "tomato" {
		t.Errorf("Keywords fallback = %v, want [tomato]", kws)
	}
}

func TestNewVocabularyRejectsDuplicates(t *testing.T) {
	if _, err := NewVocabulary([]string{"Tomat", "Tomat"}, nil); err == nil {
		t.Error("expected error for duplicate canonical name")
	}
}

func TestNewVocabularyRejectsEmpty(t *testing.T) {
	if _, err := NewVocabulary(nil, nil); err == nil {
		t.Error("expected error for empty vocabulary")
	}
	if _, err := NewVocabulary([]string{"Tomat", ""}, nil); err == nil {
		t.Error("expected error for empty canonical name")
	}
}
