package prep

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// ClassMetrics is a per-class slice of the cross-validation report.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// CVReport aggregates stratified k-fold cross-validation diagnostics.
type CVReport struct {
	Folds          int
	Seed           int64
	FoldAccuracies []float64
	Accuracy       float64
	PerClass       map[Label]ClassMetrics
}

// String renders the report in a compact classification-report form.
func (r CVReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d-fold CV accuracy: %.4f (folds:", r.Folds, r.Accuracy)
	for _, acc := range r.FoldAccuracies {
		fmt.Fprintf(&b, " %.4f", acc)
	}
	b.WriteString(")\n")
	classes := make([]Label, 0, len(r.PerClass))
	for class := range r.PerClass {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Severity() < classes[j].Severity() })
	for _, class := range classes {
		m := r.PerClass[class]
		fmt.Fprintf(&b, "%-14s precision=%.2f recall=%.2f f1=%.2f support=%d\n",
			class, m.Precision, m.Recall, m.F1, m.Support)
	}
	return b.String()
}

// stratifiedFolds splits sample indices into k folds preserving class
// proportions. Samples of each class are shuffled with the given seed
// and dealt round-robin, so fold membership is reproducible.
func stratifiedFolds(y []int, k int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	byClass := make(map[int][]int)
	classOrder := make([]int, 0)
	for i, label := range y {
		if _, ok := byClass[label]; !ok {
			classOrder = append(classOrder, label)
		}
		byClass[label] = append(byClass[label], i)
	}
	sort.Ints(classOrder)
	folds := make([][]int, k)
	for _, class := range classOrder {
		members := byClass[class]
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
		for i, idx := range members {
			folds[i%k] = append(folds[i%k], idx)
		}
	}
	for _, fold := range folds {
		sort.Ints(fold)
	}
	return folds
}

// CrossValidate runs stratified k-fold cross-validation over the
// normalized training phrases and returns accuracy diagnostics. Each
// fold fits a fresh vectorizer and classifier on the remaining data.
func CrossValidate(docs []string, y []int, classes []Label, k int, seed int64, opts FitOptions) CVReport {
	report := CVReport{Folds: k, Seed: seed, PerClass: make(map[Label]ClassMetrics)}
	if k < 2 || len(docs) < k {
		return report
	}
	folds := stratifiedFolds(y, k, seed)
	predicted := make([]int, len(docs))
	for _, testIdx := range folds {
		inTest := make(map[int]struct{}, len(testIdx))
		for _, idx := range testIdx {
			inTest[idx] = struct{}{}
		}
		trainDocs := make([]string, 0, len(docs)-len(testIdx))
		trainY := make([]int, 0, len(docs)-len(testIdx))
		for i, doc := range docs {
			if _, ok := inTest[i]; ok {
				continue
			}
			trainDocs = append(trainDocs, doc)
			trainY = append(trainY, y[i])
		}
		vec := NewVectorizer()
		vec.Fit(trainDocs)
		clf := FitLinear(vec.TransformAll(trainDocs), trainY, vec.Dim(), classes, opts)
		for _, idx := range testIdx {
			out := clf.Predict(vec.Transform(docs[idx]))
			predicted[idx] = classIndex(classes, out.Label)
		}
	}

	correct := 0
	foldCorrect := make([]int, k)
	for fi, testIdx := range folds {
		for _, idx := range testIdx {
			if predicted[idx] == y[idx] {
				correct++
				foldCorrect[fi]++
			}
		}
	}
	report.Accuracy = float64(correct) / float64(len(docs))
	report.FoldAccuracies = make([]float64, k)
	for fi, fold := range folds {
		if len(fold) > 0 {
			report.FoldAccuracies[fi] = float64(foldCorrect[fi]) / float64(len(fold))
		}
	}

	for ci, class := range classes {
		var tp, fp, fn int
		for i := range docs {
			switch {
			case predicted[i] == ci && y[i] == ci:
				tp++
			case predicted[i] == ci && y[i] != ci:
				fp++
			case predicted[i] != ci && y[i] == ci:
				fn++
			}
		}
		m := ClassMetrics{Support: tp + fn}
		if tp+fp > 0 {
			m.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			m.Recall = float64(tp) / float64(tp+fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.PerClass[class] = m
	}
	return report
}

func classIndex(classes []Label, label Label) int {
	for i, c := range classes {
		if c == label {
			return i
		}
	}
	return -1
}
