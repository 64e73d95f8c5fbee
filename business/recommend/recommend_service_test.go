package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"brewAdvisor/domain"
)

type stubCatalog struct {
	filtered   []domain.Beverage
	byPrice    []domain.Beverage
	filterErr  error
	priceCalls int
}

func (s *stubCatalog) FindByFilter(ctx context.Context, mood string, maxPrice float64) ([]domain.Beverage, error) {
	if s.filterErr != nil {
		return nil, s.filterErr
	}
	return s.filtered, nil
}

func (s *stubCatalog) FindByMaxPrice(ctx context.Context, maxPrice float64) ([]domain.Beverage, error) {
	s.priceCalls++
	return s.byPrice, nil
}

type stubHistory struct {
	purchases []domain.Purchase
	spending  domain.WeeklySpending
	histErr   error
	spendErr  error
}

func (s *stubHistory) HistoryForUser(ctx context.Context, userID uint, limit, windowDays int) ([]domain.Purchase, error) {
	if s.histErr != nil {
		return nil, s.histErr
	}
	return s.purchases, nil
}

func (s *stubHistory) WeeklySpending(ctx context.Context, userID uint) (domain.WeeklySpending, error) {
	if s.spendErr != nil {
		return domain.WeeklySpending{}, s.spendErr
	}
	return s.spending, nil
}

func tiredCatalog() []domain.Beverage {
	return []domain.Beverage{
		{Name: "Pike Place Roast", Category: "Coffee", Price: 2.45, SuitableMoods: "Tired,Focused"},
		{Name: "Grande Americano", Category: "Coffee", Price: 3.45, SuitableMoods: "Tired,Focused"},
		{Name: "Cold Brew", Category: "Coffee", Price: 3.95, SuitableMoods: "Tired"},
		{Name: "English Breakfast", Category: "Tea", Price: 2.75, SuitableMoods: "Tired,Focused"},
		{Name: "Matcha Latte", Category: "Tea", Price: 4.75, SuitableMoods: "Tired,Happy"},
		{Name: "Hot Chocolate", Category: "Other", Price: 3.25, SuitableMoods: "Tired,Stressed"},
	}
}

func testSpending() domain.WeeklySpending {
	return domain.WeeklySpending{
		UserID:        1,
		WeeklyBudget:  25.0,
		SpentThisWeek: 8.0,
		Remaining:     17.0,
	}
}

func TestRecommendReturnsTopN(t *testing.T) {
	svc := NewRecommendationService(
		&stubCatalog{filtered: tiredCatalog()},
		&stubHistory{spending: testSpending()},
		DefaultConfig(),
	)

	recs, err := svc.Recommend(context.Background(), 1, "Tired", 6.00)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}

	seen := make(map[string]bool)
	for _, r := range recs {
		if seen[r.Name] {
			t.Errorf("duplicate recommendation %q", r.Name)
		}
		seen[r.Name] = true

		if r.Score <= 0 {
			t.Errorf("%q has non-positive ensemble score %v", r.Name, r.Score)
		}
		if r.BayesianScore <= 0 || r.BayesianScore > 1 {
			t.Errorf("%q bayesian score out of range: %v", r.Name, r.BayesianScore)
		}
		if r.CSPScore <= 0 || r.CSPScore > 1 {
			t.Errorf("%q csp score out of range: %v", r.Name, r.CSPScore)
		}
	}
}

func TestRecommendDeterministic(t *testing.T) {
	history := []domain.Purchase{
		{BeverageName: "Grande Americano", Category: "Coffee", Price: 3.45, Mood: "Tired", PurchaseDate: time.Now().AddDate(0, 0, -10)},
		{BeverageName: "Matcha Latte", Category: "Tea", Price: 4.75, Mood: "Happy", PurchaseDate: time.Now().AddDate(0, 0, -20)},
	}

	svc := NewRecommendationService(
		&stubCatalog{filtered: tiredCatalog()},
		&stubHistory{purchases: history, spending: testSpending()},
		DefaultConfig(),
	)

	first, err := svc.Recommend(context.Background(), 1, "Tired", 6.00)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := svc.Recommend(context.Background(), 1, "Tired", 6.00)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("position %d differs: %q vs %q", i, first[i].Name, second[i].Name)
		}
	}
}

func TestRecommendExcludesRecentPurchase(t *testing.T) {
	history := []domain.Purchase{
		{BeverageName: "Grande Americano", Category: "Coffee", Price: 3.45, Mood: "Tired", PurchaseDate: time.Now().Add(-24 * time.Hour)},
	}

	svc := NewRecommendationService(
		&stubCatalog{filtered: tiredCatalog()},
		&stubHistory{purchases: history, spending: testSpending()},
		DefaultConfig(),
	)

	recs, err := svc.Recommend(context.Background(), 1, "Tired", 6.00)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected recommendations despite exclusion")
	}

	for _, r := range recs {
		if r.Name == "Grande Americano" {
			t.Error("drink purchased yesterday should be excluded")
		}
	}
}

func TestRecommendFallbackOnEmptyPool(t *testing.T) {
	catalog := &stubCatalog{
		filtered: nil,
		byPrice: []domain.Beverage{
			{Name: "Lemonade", Category: "", Price: 2.25},
			{Name: "Sparkling Water", Category: "Other", Price: 1.95},
		},
	}

	svc := NewRecommendationService(
		catalog,
		&stubHistory{spending: testSpending()},
		DefaultConfig(),
	)

	recs, err := svc.Recommend(context.Background(), 1, "Tired", 3.00)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	if catalog.priceCalls != 1 {
		t.Errorf("expected one fallback catalog query, got %d", catalog.priceCalls)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d fallback recommendations, want 2", len(recs))
	}

	for _, r := range recs {
		if r.Category == "" {
			t.Errorf("%q kept an empty category through fallback", r.Name)
		}
	}
}

func TestRecommendEmptyResultIsNotAnError(t *testing.T) {
	svc := NewRecommendationService(
		&stubCatalog{},
		&stubHistory{spending: testSpending()},
		DefaultConfig(),
	)

	recs, err := svc.Recommend(context.Background(), 1, "Tired", 0.50)
	if err != nil {
		t.Fatalf("empty catalog should not error: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("want empty non-nil slice, got %v", recs)
	}
}

func TestRecommendDegradesOnCollaboratorFailure(t *testing.T) {
	svc := NewRecommendationService(
		&stubCatalog{filtered: tiredCatalog()},
		&stubHistory{histErr: errors.New("history store down"), spendErr: errors.New("spending store down")},
		DefaultConfig(),
	)

	recs, err := svc.Recommend(context.Background(), 1, "Tired", 6.00)
	if err != nil {
		t.Fatalf("degraded request should still succeed: %v", err)
	}
	if len(recs) == 0 {
		t.Error("expected recommendations from catalog alone")
	}
}

func TestRecommendHonorsCancelledContext(t *testing.T) {
	svc := NewRecommendationService(
		&stubCatalog{filtered: tiredCatalog()},
		&stubHistory{spending: testSpending()},
		DefaultConfig(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Recommend(ctx, 1, "Tired", 6.00); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestSelectDiversePrefersDistinctCategories(t *testing.T) {
	svc := NewRecommendationService(&stubCatalog{}, &stubHistory{}, DefaultConfig())

	scored := []domain.ScoredCandidate{
		{Name: "Grande Americano", Category: "Coffee", Price: 4.00, Score: 0.90},
		{Name: "Pike Place Roast", Category: "Coffee", Price: 4.00, Score: 0.89},
		{Name: "Green Tea", Category: "Tea", Price: 3.00, Score: 0.85},
	}

	picked := svc.selectDiverse(scored, 3)
	if len(picked) != 3 {
		t.Fatalf("got %d picks, want 3", len(picked))
	}

	if picked[0].Name != "Grande Americano" {
		t.Errorf("first pick should be the top-scored candidate, got %q", picked[0].Name)
	}
	if picked[1].Name != "Green Tea" {
		t.Errorf("second pick should trade score for category diversity, got %q", picked[1].Name)
	}
}
