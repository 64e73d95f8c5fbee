package recommend

import (
	"math"
	"testing"

	"brewAdvisor/domain"
)

func repeatHistory(name, category string, price float64, mood string, n int) []domain.HistoryRecord {
	records := make([]domain.HistoryRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, domain.HistoryRecord{
			BeverageName: name,
			Category:     category,
			Price:        price,
			Mood:         mood,
			TimeBucket:   "morning",
			DaysAgo:      float64(i),
		})
	}
	return records
}

func TestPosteriorDistributionSumsToOne(t *testing.T) {
	p := NewPreferencePredictor(DefaultConfig())
	candidates := []string{"Grande Americano", "Green Tea", "Caramel Frappuccino", "Hot Chocolate"}

	history := repeatHistory("Grande Americano", "Coffee", 3.45, "Tired", 12)
	history = append(history, repeatHistory("Green Tea", "Tea", 2.95, "Happy", 3)...)

	dist := p.PosteriorDistribution(history, candidates)

	var sum float64
	for _, v := range dist {
		sum += v
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("posterior probabilities sum to %v, want 1", sum)
	}
}

func TestScoreBounds(t *testing.T) {
	p := NewPreferencePredictor(DefaultConfig())
	candidates := []string{"Grande Americano", "Green Tea"}
	history := repeatHistory("Grande Americano", "Coffee", 3.45, "Tired", 20)

	for _, name := range candidates {
		score := p.Score(name, 3.45, "Coffee", history, candidates, "Tired", "morning")
		if score <= 0 || score > 1 {
			t.Errorf("Score(%q) = %v, want in (0, 1]", name, score)
		}
	}
}

func TestScoreFavorsDominantDrink(t *testing.T) {
	p := NewPreferencePredictor(DefaultConfig())
	candidates := []string{"Grande Americano", "Green Tea"}
	history := repeatHistory("Grande Americano", "Coffee", 3.45, "Tired", 40)

	favorite := p.Score("Grande Americano", 3.45, "Coffee", history, candidates, "Tired", "morning")
	stranger := p.Score("Green Tea", 5.95, "Tea", history, candidates, "Tired", "morning")

	if favorite <= stranger {
		t.Errorf("expected heavily purchased drink to outscore stranger: %v vs %v", favorite, stranger)
	}
}

func TestScoreColdStartIsUniform(t *testing.T) {
	p := NewPreferencePredictor(DefaultConfig())
	candidates := []string{"Grande Americano", "Green Tea", "Hot Chocolate", "Lemonade"}

	first := p.Score(candidates[0], 3.45, "Coffee", nil, candidates, "Happy", "morning")
	for _, name := range candidates[1:] {
		score := p.Score(name, 3.45, "Coffee", nil, candidates, "Happy", "morning")
		if math.Abs(score-first) > 1e-9 {
			t.Errorf("cold-start scores differ: %q=%v vs %q=%v", candidates[0], first, name, score)
		}
	}
}

func TestConsistency(t *testing.T) {
	p := NewPreferencePredictor(DefaultConfig())

	if got := p.Consistency(nil); got != 0.5 {
		t.Errorf("Consistency(empty) = %v, want neutral 0.5", got)
	}

	same := repeatHistory("Grande Americano", "Coffee", 3.45, "Tired", 10)
	if got := p.Consistency(same); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("Consistency(single repeated drink) = %v, want 0.9", got)
	}

	varied := repeatHistory("A", "Coffee", 3.0, "Tired", 1)
	varied = append(varied, repeatHistory("B", "Tea", 3.0, "Tired", 1)...)
	varied = append(varied, repeatHistory("C", "Coffee", 3.0, "Tired", 1)...)
	if got := p.Consistency(varied); got != 0.0 {
		t.Errorf("Consistency(all unique) = %v, want 0", got)
	}
}

func TestDecayRateAdaptsToConsistency(t *testing.T) {
	p := NewPreferencePredictor(DefaultConfig())

	consistent := repeatHistory("Grande Americano", "Coffee", 3.45, "Tired", 20)

	exploratory := make([]domain.HistoryRecord, 0, 20)
	for i := 0; i < 20; i++ {
		exploratory = append(exploratory, domain.HistoryRecord{
			BeverageName: string(rune('A' + i)),
			Category:     "Coffee",
			Price:        3.0,
			Mood:         "Tired",
			DaysAgo:      float64(i),
		})
	}

	if rc, re := p.decayRate(consistent), p.decayRate(exploratory); rc >= re {
		t.Errorf("consistent user should forget slower: consistent=%v exploratory=%v", rc, re)
	}
}

func TestPriceTermRobustToDegenerateSpread(t *testing.T) {
	p := NewPreferencePredictor(DefaultConfig())
	history := repeatHistory("Grande Americano", "Coffee", 3.45, "Tired", 10)

	// zero MAD, candidate near the median
	near := p.priceTerm(history, 3.95)
	if near != 1.0 {
		t.Errorf("priceTerm near median with zero spread = %v, want 1.0", near)
	}

	// zero MAD, candidate far from the median
	far := p.priceTerm(history, 7.95)
	if far != 0.3 {
		t.Errorf("priceTerm far from median with zero spread = %v, want 0.3", far)
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{3.0, 1.0, 2.0}); got != 2.0 {
		t.Errorf("median(odd) = %v, want 2", got)
	}
	if got := median([]float64{4.0, 1.0, 2.0, 3.0}); got != 2.5 {
		t.Errorf("median(even) = %v, want 2.5", got)
	}
	if got := median(nil); got != 0 {
		t.Errorf("median(empty) = %v, want 0", got)
	}
}
