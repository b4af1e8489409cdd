package prep

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// FitOptions are the training hyperparameters of the linear model.
// Defaults reproduce the study configuration: L2 regularization with
// C=4.0 and balanced class weights.
type FitOptions struct {
	C            float64 `json:"c"`
	MaxIter      int     `json:"maxIter"`
	LearningRate float64 `json:"learningRate"`
}

// ApplyDefaults populates zero values with the study defaults.
func (o *FitOptions) ApplyDefaults() {
	if o.C <= 0 {
		o.C = 4.0
	}
	if o.MaxIter <= 0 {
		o.MaxIter = 400
	}
	if o.LearningRate <= 0 {
		o.LearningRate = 0.5
	}
}

// LinearClassifier is a multinomial (softmax) logistic regression over
// sparse TF-IDF vectors. Weights are zero-initialized and trained with
// full-batch gradient descent, so identical inputs always yield
// identical models.
type LinearClassifier struct {
	Classes []Label     `json:"classes"`
	Weights [][]float64 `json:"weights"` // one row per class
	Bias    []float64   `json:"bias"`
	Dim     int         `json:"dim"`
}

// sparseVec is a sparse vector with indices in ascending order. Score
// sums must run in a fixed index order: float addition is not
// associative, and ranging over a map would make the result depend on
// iteration order.
type sparseVec struct {
	idx []int
	val []float64
}

func sortVec(vec map[int]float64) sparseVec {
	idx := make([]int, 0, len(vec))
	for j := range vec {
		idx = append(idx, j)
	}
	sort.Ints(idx)
	vals := make([]float64, len(idx))
	for i, j := range idx {
		vals[i] = vec[j]
	}
	return sparseVec{idx: idx, val: vals}
}

// FitLinear trains a classifier on sparse vectors x with class indices
// y into opts.Classes space. Class weights are balanced as
// n / (k * n_c) to compensate label skew in the training set.
func FitLinear(x []map[int]float64, y []int, dim int, classes []Label, opts FitOptions) *LinearClassifier {
	opts.ApplyDefaults()
	k := len(classes)
	n := len(x)
	clf := &LinearClassifier{
		Classes: append([]Label(nil), classes...),
		Weights: make([][]float64, k),
		Bias:    make([]float64, k),
		Dim:     dim,
	}
	for c := range clf.Weights {
		clf.Weights[c] = make([]float64, dim)
	}
	if n == 0 || dim == 0 || k == 0 {
		return clf
	}

	samples := make([]sparseVec, n)
	for i, vec := range x {
		samples[i] = sortVec(vec)
	}

	counts := make([]float64, k)
	for _, label := range y {
		counts[label]++
	}
	sampleWeight := make([]float64, n)
	for i, label := range y {
		if counts[label] > 0 {
			sampleWeight[i] = float64(n) / (float64(k) * counts[label])
		}
	}

	gradW := make([][]float64, k)
	for c := range gradW {
		gradW[c] = make([]float64, dim)
	}
	gradB := make([]float64, k)
	probs := make([]float64, k)

	for iter := 0; iter < opts.MaxIter; iter++ {
		for c := range gradW {
			for j := range gradW[c] {
				gradW[c][j] = 0
			}
			gradB[c] = 0
		}
		for i, vec := range samples {
			clf.scores(vec, probs)
			softmaxInPlace(probs)
			for c := 0; c < k; c++ {
				delta := probs[c]
				if c == y[i] {
					delta -= 1
				}
				delta *= sampleWeight[i]
				for fi, j := range vec.idx {
					gradW[c][j] += delta * vec.val[fi]
				}
				gradB[c] += delta
			}
		}
		// L2 term: minimizing C*loss + 0.5*||w||^2 is equivalent to
		// loss + ||w||^2/(2C) per sample batch.
		step := opts.LearningRate / float64(n)
		for c := 0; c < k; c++ {
			floats.AddScaled(gradW[c], 1/opts.C, clf.Weights[c])
			floats.AddScaled(clf.Weights[c], -step, gradW[c])
			clf.Bias[c] -= step * gradB[c]
		}
	}
	return clf
}

// Predict scores one sparse vector and returns the top class with the
// full per-class probability distribution.
func (c *LinearClassifier) Predict(vec map[int]float64) ClassifierOutput {
	scores := make([]float64, len(c.Classes))
	c.scores(sortVec(vec), scores)
	softmaxInPlace(scores)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	probs := make(map[Label]float64, len(c.Classes))
	for i, class := range c.Classes {
		probs[class] = scores[i]
	}
	return ClassifierOutput{Label: c.Classes[best], Probs: probs}
}

func (c *LinearClassifier) scores(vec sparseVec, out []float64) {
	copy(out, c.Bias)
	for i, j := range vec.idx {
		if j >= c.Dim {
			continue
		}
		for ci := range c.Classes {
			out[ci] += c.Weights[ci][j] * vec.val[i]
		}
	}
}

func softmaxInPlace(scores []float64) {
	if len(scores) == 0 {
		return
	}
	max := floats.Max(scores)
	for i, s := range scores {
		scores[i] = math.Exp(s - max)
	}
	sum := floats.Sum(scores)
	if sum == 0 {
		return
	}
	floats.Scale(1/sum, scores)
}
