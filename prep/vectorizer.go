package prep

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vectorizer turns normalized text into L2-normalized TF-IDF vectors
// over word 1..MaxN-grams. The vocabulary is fixed at fit time;
// transform silently drops n-grams outside it.
type Vectorizer struct {
	MaxN       int            `json:"maxN"`
	MinDF      int            `json:"minDf"`
	MaxDFRatio float64        `json:"maxDfRatio"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// NewVectorizer returns a vectorizer with the study's hyperparameters:
// word 1-3 grams, min_df=2, max_df=0.95.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{MaxN: 3, MinDF: 2, MaxDFRatio: 0.95}
}

// Dim is the dimensionality of produced vectors.
func (v *Vectorizer) Dim() int { return len(v.Vocabulary) }

// Fit learns the vocabulary and smooth IDF weights from the given
// normalized documents. Terms below MinDF documents or above
// MaxDFRatio of documents are pruned. Vocabulary indices are assigned
// in lexicographic term order so repeated fits are identical.
func (v *Vectorizer) Fit(docs []string) {
	if v.MaxN <= 0 {
		v.MaxN = 3
	}
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, g := range ngrams(doc, v.MaxN) {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			df[g]++
		}
	}
	n := len(docs)
	maxDF := n
	if v.MaxDFRatio > 0 && v.MaxDFRatio < 1 {
		maxDF = int(v.MaxDFRatio * float64(n))
	}
	minDF := v.MinDF
	if minDF < 1 {
		minDF = 1
	}
	terms := make([]string, 0, len(df))
	for term, count := range df {
		if count < minDF || count > maxDF {
			continue
		}
		terms = append(terms, term)
	}
	sort.Strings(terms)
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
}

// Transform maps one normalized document to a sparse TF-IDF vector.
// Unknown n-grams are dropped; the result is L2-normalized.
func (v *Vectorizer) Transform(doc string) map[int]float64 {
	vec := make(map[int]float64)
	for _, g := range ngrams(doc, v.MaxN) {
		idx, ok := v.Vocabulary[g]
		if !ok {
			continue
		}
		vec[idx]++
	}
	if len(vec) == 0 {
		return vec
	}
	// Weight and norm in ascending index order: float sums are not
	// associative, and map order would leak into the vector values.
	indices := make([]int, 0, len(vec))
	for idx := range vec {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	vals := make([]float64, len(indices))
	for i, idx := range indices {
		vec[idx] *= v.IDF[idx]
		vals[i] = vec[idx]
	}
	norm := floats.Norm(vals, 2)
	if norm > 0 {
		for _, idx := range indices {
			vec[idx] /= norm
		}
	}
	return vec
}

// TransformAll transforms a batch of normalized documents.
func (v *Vectorizer) TransformAll(docs []string) []map[int]float64 {
	out := make([]map[int]float64, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// ngrams emits all word n-grams for n in [1, maxN], joined by single
// spaces, in document order.
func ngrams(doc string, maxN int) []string {
	tokens := strings.Fields(doc)
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens)*maxN)
	for n := 1; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
