package prep

import (
	"reflect"
	"testing"
)

func TestStratifiedFoldsPreserveClassBalance(t *testing.T) {
	y := make([]int, 0, 30)
	for i := 0; i < 15; i++ {
		y = append(y, 0)
	}
	for i := 0; i < 10; i++ {
		y = append(y, 1)
	}
	for i := 0; i < 5; i++ {
		y = append(y, 2)
	}
	folds := stratifiedFolds(y, 5, 42)
	if len(folds) != 5 {
		t.Fatalf("fold count = %d", len(folds))
	}
	seen := make(map[int]int)
	for _, fold := range folds {
		counts := map[int]int{}
		for _, idx := range fold {
			counts[y[idx]]++
			seen[idx]++
		}
		// 15/10/5 samples over 5 folds: exactly 3/2/1 per fold.
		if counts[0] != 3 || counts[1] != 2 || counts[2] != 1 {
			t.Fatalf("fold class counts = %v", counts)
		}
	}
	if len(seen) != len(y) {
		t.Fatalf("folds cover %d of %d samples", len(seen), len(y))
	}
	for idx, n := range seen {
		if n != 1 {
			t.Fatalf("sample %d appears in %d folds", idx, n)
		}
	}
}

func TestStratifiedFoldsDeterministic(t *testing.T) {
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2, 0, 1, 2}
	a := stratifiedFolds(y, 3, 42)
	b := stratifiedFolds(y, 3, 42)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("folds must be reproducible for a fixed seed")
	}
}

func TestCrossValidateOnSeparablePhrases(t *testing.T) {
	docs := []string{
		"temizlik mukemmel ve temiz", "mukoza temiz temizlik mukemmel",
		"temiz kolon mukemmel gorunum", "temizlik mukemmel temiz mukoza",
		"orta duzeyde temizlik izlendi", "temizlik orta duzeyde",
		"orta duzeyde kirli alanlar", "kirli alanlar orta duzeyde",
		"yogun gaita kotu temizlik", "kotu temizlik yogun gaita",
		"gaita yogun ve kotu", "kotu gorunum yogun gaita",
	}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2}
	report := CrossValidate(docs, y, Labels(), 4, 42, FitOptions{})
	if report.Accuracy < 0.75 {
		t.Fatalf("cv accuracy %.2f too low for separable phrases", report.Accuracy)
	}
	if len(report.FoldAccuracies) != 4 {
		t.Fatalf("fold accuracies = %v", report.FoldAccuracies)
	}
	for _, class := range Labels() {
		if _, ok := report.PerClass[class]; !ok {
			t.Fatalf("missing per-class metrics for %s", class)
		}
	}
	if report.String() == "" {
		t.Fatal("report rendering must not be empty")
	}
}

func TestCrossValidateTooFewSamples(t *testing.T) {
	report := CrossValidate([]string{"a"}, []int{0}, Labels(), 5, 42, FitOptions{})
	if report.Accuracy != 0 || len(report.FoldAccuracies) != 0 {
		t.Fatalf("degenerate input should yield an empty report, got %+v", report)
	}
}
