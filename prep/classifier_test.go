package prep

import (
	"math"
	"reflect"
	"testing"
)

func separableTrainingData() ([]map[int]float64, []int) {
	// Three well-separated clusters on three axes.
	x := []map[int]float64{
		{0: 1},
		{0: 0.9, 3: 0.1},
		{0: 1, 4: 0.2},
		{1: 1},
		{1: 0.8, 3: 0.2},
		{1: 1, 5: 0.1},
		{2: 1},
		{2: 0.9, 4: 0.1},
		{2: 1, 5: 0.2},
	}
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	return x, y
}

func TestFitLinearSeparable(t *testing.T) {
	x, y := separableTrainingData()
	clf := FitLinear(x, y, 6, Labels(), FitOptions{})
	for i, vec := range x {
		out := clf.Predict(vec)
		if out.Label != Labels()[y[i]] {
			t.Fatalf("sample %d: predicted %s, want %s", i, out.Label, Labels()[y[i]])
		}
	}
}

func TestFitLinearDeterministic(t *testing.T) {
	x, y := separableTrainingData()
	a := FitLinear(x, y, 6, Labels(), FitOptions{})
	b := FitLinear(x, y, 6, Labels(), FitOptions{})
	if !reflect.DeepEqual(a.Weights, b.Weights) || !reflect.DeepEqual(a.Bias, b.Bias) {
		t.Fatal("two fits on identical data must produce identical models")
	}
}

// Repeated fits on a real TF-IDF matrix must agree bit-for-bit. Wide
// vectors are the interesting case: score sums over many features
// expose any iteration-order dependence that tiny fixtures hide.
func TestFitLinearDeterministicOnTFIDF(t *testing.T) {
	docs := []string{
		"kolon temizligi yeterliydi mukoza temiz izlendi tum segmentler degerlendirildi",
		"kolon temizligi yeterli idi mukoza temiz tum segmentler net izlendi",
		"temizlik mukemmeldi mukoza temiz izlendi segmentler net degerlendirildi",
		"kolon temizligi orta duzeyde idi yer yer gaita artiklari izlendi",
		"temizlik orta duzeyde izlendi bazi segmentler gaita nedeniyle net degil",
		"kolon temizligi suboptimal idi gaita artiklari segmentleri kismen ortuyordu",
		"kolon temizligi yetersizdi yogun gaita nedeniyle mukoza degerlendirilemedi",
		"temizlik kotu idi yogun gaita tum segmentleri ortuyordu",
		"yogun gaita nedeniyle kolon temizligi yetersiz mukoza izlenemedi",
	}
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}

	v := NewVectorizer()
	v.Fit(docs)
	x := v.TransformAll(docs)

	a := FitLinear(x, y, v.Dim(), Labels(), FitOptions{})
	b := FitLinear(x, y, v.Dim(), Labels(), FitOptions{})
	if !reflect.DeepEqual(a.Weights, b.Weights) {
		t.Fatal("weights differ between fits on identical TF-IDF input")
	}
	if !reflect.DeepEqual(a.Bias, b.Bias) {
		t.Fatal("bias differs between fits on identical TF-IDF input")
	}
	for i, vec := range x {
		pa := a.Predict(vec)
		pb := b.Predict(vec)
		if pa.Label != pb.Label || !reflect.DeepEqual(pa.Probs, pb.Probs) {
			t.Fatalf("sample %d: predictions diverge between identical fits", i)
		}
	}
}

func TestPredictProbabilitiesSumToOne(t *testing.T) {
	x, y := separableTrainingData()
	clf := FitLinear(x, y, 6, Labels(), FitOptions{})
	out := clf.Predict(map[int]float64{0: 0.5, 1: 0.5})
	var sum float64
	for _, p := range out.Probs {
		if p < 0 || p > 1 {
			t.Fatalf("probability out of range: %v", out.Probs)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %f", sum)
	}
	if out.Confidence() != out.Probs[out.Label] {
		t.Fatal("confidence must be the top-class probability")
	}
}

func TestFitLinearBalancedWeightsHandleSkew(t *testing.T) {
	// 8 samples of class 0 vs 2 of class 1; balanced weighting should
	// still let the minority class win on its own axis.
	x := make([]map[int]float64, 0, 10)
	y := make([]int, 0, 10)
	for i := 0; i < 8; i++ {
		x = append(x, map[int]float64{0: 1})
		y = append(y, 0)
	}
	for i := 0; i < 2; i++ {
		x = append(x, map[int]float64{1: 1})
		y = append(y, 1)
	}
	clf := FitLinear(x, y, 2, []Label{LabelGood, LabelPoor}, FitOptions{})
	if out := clf.Predict(map[int]float64{1: 1}); out.Label != LabelPoor {
		t.Fatalf("minority class sample predicted as %s", out.Label)
	}
}

func TestPredictEmptyVector(t *testing.T) {
	x, y := separableTrainingData()
	clf := FitLinear(x, y, 6, Labels(), FitOptions{})
	out := clf.Predict(map[int]float64{})
	if out.Label == "" {
		t.Fatal("empty vector must still yield a deterministic label")
	}
}
