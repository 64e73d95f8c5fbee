package recommend

import (
	"testing"
	"time"

	"brewAdvisor/domain"
)

func timeAtHour(hour int) time.Time {
	return time.Date(2026, time.March, 10, hour, 30, 0, 0, time.UTC)
}

func testCatalog() []domain.Beverage {
	return []domain.Beverage{
		{Name: "Pike Place Roast", Category: "Coffee", Price: 2.45, SuitableMoods: "Tired,Focused"},
		{Name: "Grande Americano", Category: "Coffee", Price: 3.45, SuitableMoods: "Tired,Focused"},
		{Name: "Caramel Macchiato", Category: "Coffee", Price: 5.45, SuitableMoods: "Happy,Stressed"},
		{Name: "Green Tea", Category: "Tea", Price: 2.95, SuitableMoods: "Stressed,Focused"},
		{Name: "Chai Latte", Category: "Tea", Price: 4.45, SuitableMoods: "Happy,Stressed"},
		{Name: "Caramel Frappuccino", Category: "Frappuccino", Price: 5.95, SuitableMoods: "Happy"},
		{Name: "Hot Chocolate", Category: "Other", Price: 3.25, SuitableMoods: "Happy,Stressed"},
	}
}

func TestFilterHardConstraints(t *testing.T) {
	f := NewConstraintFilter(DefaultConfig())

	pool := f.Filter(testCatalog(), "Tired", 4.00, nil, nil)
	if len(pool) == 0 {
		t.Fatal("expected survivors for Tired under $4")
	}

	for _, b := range pool {
		if !b.SuitsMood("Tired") {
			t.Errorf("%q does not suit mood Tired", b.Name)
		}
		if b.Price > 4.00 {
			t.Errorf("%q priced %v above the $4 ceiling", b.Name, b.Price)
		}
	}
}

func TestFilterSingleSurvivor(t *testing.T) {
	f := NewConstraintFilter(DefaultConfig())

	// under $3 only Pike Place Roast suits Tired
	pool := f.Filter(testCatalog(), "Tired", 3.00, nil, nil)
	if len(pool) != 1 || pool[0].Name != "Pike Place Roast" {
		t.Fatalf("expected only Pike Place Roast, got %+v", pool)
	}

	// three drinks, one affordable match
	small := []domain.Beverage{
		{Name: "Coffee", Category: "Coffee", Price: 2.45, SuitableMoods: "Tired"},
		{Name: "Latte", Category: "Latte", Price: 5.45, SuitableMoods: "Happy"},
		{Name: "Frappuccino", Category: "Frappuccino", Price: 6.95, SuitableMoods: "Happy"},
	}
	pool = f.Filter(small, "Tired", 3.00, nil, nil)
	if len(pool) != 1 || pool[0].Name != "Coffee" {
		t.Fatalf("expected only the $2.45 Coffee, got %+v", pool)
	}
}

func TestFilterExclusion(t *testing.T) {
	f := NewConstraintFilter(DefaultConfig())

	excluded := map[string]struct{}{"Pike Place Roast": {}}
	pool := f.Filter(testCatalog(), "Tired", 4.00, excluded, nil)

	for _, b := range pool {
		if b.Name == "Pike Place Roast" {
			t.Error("excluded beverage survived filtering")
		}
	}
	if len(pool) == 0 {
		t.Error("expected remaining candidates after exclusion")
	}
}

func TestFilterNoSolution(t *testing.T) {
	f := NewConstraintFilter(DefaultConfig())

	if pool := f.Filter(testCatalog(), "Tired", 1.00, nil, nil); pool != nil {
		t.Errorf("expected nil pool when nothing is affordable, got %+v", pool)
	}
	if pool := f.Filter(nil, "Tired", 5.00, nil, nil); pool != nil {
		t.Errorf("expected nil pool for empty catalog, got %+v", pool)
	}
}

func TestFilterKeepsAllSurvivors(t *testing.T) {
	f := NewConstraintFilter(DefaultConfig())

	// rebalancing and ordering must not drop or duplicate candidates
	pool := f.Filter(testCatalog(), "Stressed", 6.00, nil, nil)

	seen := make(map[string]int)
	for _, b := range pool {
		seen[candidateKey(b.Name, b.Price)]++
	}
	for key, n := range seen {
		if n != 1 {
			t.Errorf("candidate %s appears %d times", key, n)
		}
	}

	want := 0
	for _, b := range testCatalog() {
		if b.SuitsMood("Stressed") && b.Price <= 6.00 {
			want++
		}
	}
	if len(pool) != want {
		t.Errorf("pool has %d candidates, want %d", len(pool), want)
	}
}

func TestOrderByValueSpreadsCategories(t *testing.T) {
	f := NewConstraintFilter(DefaultConfig())

	prefs := &UserPreferences{
		CategoryShare: map[string]float64{"Coffee": 0.8, "Tea": 0.2},
		MedianPrice:   3.45,
	}

	pool := f.Filter(testCatalog(), "Stressed", 6.00, nil, prefs)
	if len(pool) < 3 {
		t.Fatalf("expected at least 3 survivors, got %d", len(pool))
	}

	// the diversity bonus should keep the front of the ordering from being a
	// single-category run
	categories := map[string]bool{}
	for _, b := range pool[:3] {
		categories[b.Category] = true
	}
	if len(categories) < 2 {
		t.Errorf("first three candidates all share a category: %+v", pool[:3])
	}
}

func TestConstraintAllows(t *testing.T) {
	b := domain.Beverage{Name: "Green Tea", Category: "Tea", Price: 2.95, SuitableMoods: "Stressed,Focused"}

	if (Constraint{Kind: ConstraintMood, Mood: "Happy"}).Allows(b) {
		t.Error("mood constraint allowed a non-matching beverage")
	}
	if !(Constraint{Kind: ConstraintMood, Mood: "Focused"}).Allows(b) {
		t.Error("mood constraint rejected a matching beverage")
	}
	if (Constraint{Kind: ConstraintBudget, MaxPrice: 2.50}).Allows(b) {
		t.Error("budget constraint allowed an overpriced beverage")
	}
	if !(Constraint{Kind: ConstraintBudget, MaxPrice: 0}).Allows(b) {
		t.Error("unset budget ceiling should allow everything")
	}
	if !(Constraint{Kind: ConstraintCategoryDiversity}).Allows(b) {
		t.Error("soft diversity constraint should never reject")
	}
	if (Constraint{Kind: ConstraintCategoryDiversity}).Hard() {
		t.Error("diversity constraint should be soft")
	}
}

func TestComputeTimeBucket(t *testing.T) {
	cases := map[int]string{
		0:  "night",
		5:  "night",
		6:  "morning",
		11: "morning",
		12: "afternoon",
		17: "afternoon",
		18: "evening",
		23: "evening",
	}

	for hour, want := range cases {
		ts := timeAtHour(hour)
		if got := ComputeTimeBucket(ts); got != want {
			t.Errorf("ComputeTimeBucket(hour=%d) = %q, want %q", hour, got, want)
		}
	}
}

func TestHashToUnit(t *testing.T) {
	a := hashToUnit("Grande Americano")
	if a < 0 || a > 1 {
		t.Errorf("hashToUnit out of range: %v", a)
	}
	if a != hashToUnit("Grande Americano") {
		t.Error("hashToUnit is not deterministic")
	}
	if hashToUnit("") != 0 {
		t.Error("hashToUnit of empty string should be 0")
	}
}
