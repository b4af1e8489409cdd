package prep

import (
	"math"
	"reflect"
	"testing"
)

func TestNgrams(t *testing.T) {
	got := ngrams("a b c", 3)
	want := []string{"a", "b", "c", "a b", "b c", "a b c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ngrams = %v, want %v", got, want)
	}
	if ngrams("", 3) != nil {
		t.Fatal("empty doc should yield no n-grams")
	}
}

func TestVectorizerFitPrunesByDocumentFrequency(t *testing.T) {
	v := NewVectorizer()
	docs := []string{
		"temizlik yeterli",
		"temizlik yetersiz",
		"temizlik kismen yeterli",
		"mukoza normal",
	}
	v.Fit(docs)

	// "temizlik" appears in 3 of 4 docs, below the 0.95 cap, kept.
	if _, ok := v.Vocabulary["temizlik"]; !ok {
		t.Fatal("temizlik should be in vocabulary")
	}
	// "mukoza" and "normal" appear once each, pruned by min_df=2.
	if _, ok := v.Vocabulary["mukoza"]; ok {
		t.Fatal("mukoza should be pruned (df=1)")
	}
	// "yeterli" df=2, kept.
	if _, ok := v.Vocabulary["yeterli"]; !ok {
		t.Fatal("yeterli should be in vocabulary")
	}
}

func TestVectorizerDeterministicIndices(t *testing.T) {
	docs := []string{"b a", "a b", "b a c", "c a b"}
	v1 := NewVectorizer()
	v1.Fit(docs)
	v2 := NewVectorizer()
	v2.Fit(docs)
	if !reflect.DeepEqual(v1.Vocabulary, v2.Vocabulary) {
		t.Fatal("vocabulary indices must be reproducible across fits")
	}
	if !reflect.DeepEqual(v1.IDF, v2.IDF) {
		t.Fatal("idf weights must be reproducible across fits")
	}
}

// Transform must be order-stable: the same document twice gives
// identical vector values, including the L2 normalization.
func TestVectorizerTransformDeterministic(t *testing.T) {
	docs := []string{
		"kolon temizligi yeterliydi mukoza temiz izlendi",
		"kolon temizligi yetersizdi yogun gaita izlendi",
		"kolon temizligi orta duzeyde gaita izlendi",
	}
	v := NewVectorizer()
	v.MinDF = 1
	v.Fit(docs)
	for _, doc := range docs {
		if !reflect.DeepEqual(v.Transform(doc), v.Transform(doc)) {
			t.Fatalf("transform of %q is not reproducible", doc)
		}
	}
}

func TestVectorizerTransformDropsUnseenAndNormalizes(t *testing.T) {
	v := NewVectorizer()
	v.MinDF = 1
	v.Fit([]string{"temizlik yeterli", "temizlik kotu"})

	vec := v.Transform("temizlik yeterli tamamen bilinmeyen kelimeler")
	for idx := range vec {
		if idx >= v.Dim() {
			t.Fatalf("index %d outside vocabulary", idx)
		}
	}
	var sumSq float64
	for _, val := range vec {
		sumSq += val * val
	}
	if math.Abs(sumSq-1) > 1e-9 {
		t.Fatalf("vector not L2-normalized: |v|^2 = %f", sumSq)
	}

	empty := v.Transform("hic eslesmeyen sozcukler")
	if len(empty) != 0 {
		t.Fatalf("fully unseen doc should produce empty vector, got %v", empty)
	}
}
