package recommend

import (
	"fmt"
	"math"
	"sort"

	"brewAdvisor/domain"
)

type ConstraintKind int

const (
	ConstraintMood ConstraintKind = iota
	ConstraintBudget
	ConstraintExclude
	ConstraintCategoryDiversity
)

// Constraint is a stateless predicate over a beverage. Instances are built
// fresh per request and discarded afterwards.
type Constraint struct {
	Kind     ConstraintKind
	Mood     string
	MaxPrice float64
	Excluded map[string]struct{}
}

// Hard reports whether violating the constraint removes a candidate outright.
// Diversity is soft: it only influences ordering and selection.
func (c Constraint) Hard() bool {
	return c.Kind != ConstraintCategoryDiversity
}

func (c Constraint) Allows(b domain.Beverage) bool {
	switch c.Kind {
	case ConstraintMood:
		return c.Mood == "" || b.SuitsMood(c.Mood)
	case ConstraintBudget:
		return c.MaxPrice <= 0 || b.Price <= c.MaxPrice
	case ConstraintExclude:
		_, banned := c.Excluded[b.Name]
		return !banned
	default:
		return true
	}
}

// UserPreferences is the optional taste summary the orchestrator derives from
// purchase history for value ordering.
type UserPreferences struct {
	CategoryShare map[string]float64
	MedianPrice   float64
}

// ConstraintFilter narrows a catalog to candidates satisfying the hard
// constraints and rebalances the survivors for category diversity.
type ConstraintFilter struct {
	cfg Config
}

func NewConstraintFilter(cfg Config) *ConstraintFilter {
	return &ConstraintFilter{cfg: cfg}
}

// Filter returns the diversified candidate pool in value order. An empty
// result signals no solution; the caller applies its fallback.
func (f *ConstraintFilter) Filter(
	catalog []domain.Beverage,
	mood string,
	maxPrice float64,
	excluded map[string]struct{},
	prefs *UserPreferences,
) []domain.Beverage {

	if len(catalog) == 0 {
		return nil
	}

	constraints := []Constraint{
		{Kind: ConstraintMood, Mood: mood},
		{Kind: ConstraintBudget, MaxPrice: maxPrice},
		{Kind: ConstraintExclude, Excluded: excluded},
		{Kind: ConstraintCategoryDiversity},
	}

	survivors := f.applyArcConsistency(catalog, constraints)
	if len(survivors) == 0 {
		return nil
	}

	balanced := f.rebalanceByCategory(survivors)

	return f.orderByValue(balanced, prefs)
}

// applyArcConsistency runs an AC-3 style propagation: apply each queued
// constraint to the candidate set, and whenever one removes something,
// re-enqueue the others (every constraint is treated as relevant to every
// other). Converges once a full pass removes nothing.
func (f *ConstraintFilter) applyArcConsistency(catalog []domain.Beverage, constraints []Constraint) []domain.Beverage {
	candidates := make([]domain.Beverage, len(catalog))
	copy(candidates, catalog)

	queue := make([]int, 0, len(constraints))
	queued := make([]bool, len(constraints))
	for i := range constraints {
		queue = append(queue, i)
		queued[i] = true
	}

	for len(queue) > 0 {
		ci := queue[0]
		queue = queue[1:]
		queued[ci] = false

		c := constraints[ci]
		if !c.Hard() {
			continue
		}

		kept := candidates[:0]
		removed := false
		for _, b := range candidates {
			if c.Allows(b) {
				kept = append(kept, b)
			} else {
				removed = true
			}
		}
		candidates = kept

		if len(candidates) == 0 {
			return nil
		}

		if removed {
			for j := range constraints {
				if j != ci && !queued[j] {
					queue = append(queue, j)
					queued[j] = true
				}
			}
		}
	}

	return candidates
}

// rebalanceByCategory redistributes the surviving candidates so no single
// category swamps the pool. Most-constrained (smallest) groups are served
// first, then slots are filled round-robin, then any shortfall is backfilled
// without regard to category.
func (f *ConstraintFilter) rebalanceByCategory(candidates []domain.Beverage) []domain.Beverage {
	groups := make(map[string][]domain.Beverage)
	for _, b := range candidates {
		groups[b.Category] = append(groups[b.Category], b)
	}

	total := len(candidates)
	numCategories := len(groups)
	if numCategories <= 1 {
		return candidates
	}

	minPerCategory := max(1, total/(numCategories*3))
	maxPerCategory := max(3, total/numCategories+2)

	// MRV: process the most constrained groups first.
	categories := make([]string, 0, numCategories)
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		ci, cj := categories[i], categories[j]
		if len(groups[ci]) != len(groups[cj]) {
			return len(groups[ci]) < len(groups[cj])
		}
		return ci < cj
	})

	selected := make([]domain.Beverage, 0, total)
	picked := make(map[string]struct{}, total)
	taken := make(map[string]int, numCategories)

	add := func(b domain.Beverage) {
		selected = append(selected, b)
		picked[candidateKey(b.Name, b.Price)] = struct{}{}
		taken[b.Category]++
	}

	for _, cat := range categories {
		group := groups[cat]
		for i := 0; i < minPerCategory && i < len(group) && len(selected) < total; i++ {
			add(group[i])
		}
	}

	// Round-robin across groups, skipping exhausted or capped ones.
	for len(selected) < total {
		progressed := false
		for _, cat := range categories {
			if len(selected) >= total {
				break
			}
			if taken[cat] >= maxPerCategory || taken[cat] >= len(groups[cat]) {
				continue
			}
			add(groups[cat][taken[cat]])
			progressed = true
		}
		if !progressed {
			break
		}
	}

	// Backfill with leftovers regardless of category.
	for _, b := range candidates {
		if len(selected) >= total {
			break
		}
		if _, ok := picked[candidateKey(b.Name, b.Price)]; ok {
			continue
		}
		add(b)
	}

	return selected
}

// orderByValue sorts the pool by a least-constraining-value composite: LCV
// impact, optional preference match, and a local diversity bonus against the
// most recently placed categories. Placement is greedy so the diversity term
// reacts to what has already been ordered.
func (f *ConstraintFilter) orderByValue(candidates []domain.Beverage, prefs *UserPreferences) []domain.Beverage {
	n := len(candidates)
	if n <= 1 {
		return candidates
	}

	lcv := make([]float64, n)
	for i, b := range candidates {
		sameCategory := 0
		similarPrice := 0
		for j, other := range candidates {
			if j == i {
				continue
			}
			if other.Category == b.Category {
				sameCategory++
			}
			if math.Abs(other.Price-b.Price) <= f.cfg.SimilarPriceBand {
				similarPrice++
			}
		}
		// fewer conflicts leaves more options open, so higher is better
		lcv[i] = (math.Max(0, 5-float64(sameCategory)) + math.Max(0, 5-float64(similarPrice))) / 10.0
	}

	prefScore := make([]float64, n)
	prefWeight := f.cfg.WeakPreferenceWeight
	if prefs != nil {
		prefWeight = f.cfg.PreferenceWeight
		for i, b := range candidates {
			share := prefs.CategoryShare[b.Category]
			closeness := 1.0 / (1.0 + math.Abs(b.Price-prefs.MedianPrice))
			prefScore[i] = 0.6*share + 0.4*closeness
		}
	} else {
		for i := range prefScore {
			prefScore[i] = 0.5
		}
	}

	weightSum := f.cfg.LCVWeight + prefWeight + f.cfg.DiversityWeight

	ordered := make([]domain.Beverage, 0, n)
	used := make([]bool, n)
	var recentCategories []string

	for len(ordered) < n {
		bestIdx := -1
		bestScore := math.Inf(-1)
		for i, b := range candidates {
			if used[i] {
				continue
			}
			diversity := 1.0
			for _, cat := range recentCategories {
				if cat == b.Category {
					diversity = 0.0
					break
				}
			}
			score := (f.cfg.LCVWeight*lcv[i] + prefWeight*prefScore[i] + f.cfg.DiversityWeight*diversity) / weightSum
			if score > bestScore || (score == bestScore && bestIdx >= 0 && b.Name < candidates[bestIdx].Name) {
				bestScore = score
				bestIdx = i
			}
		}

		used[bestIdx] = true
		ordered = append(ordered, candidates[bestIdx])

		recentCategories = append(recentCategories, candidates[bestIdx].Category)
		if len(recentCategories) > f.cfg.RecentCategoryWindow {
			recentCategories = recentCategories[1:]
		}
	}

	return ordered
}

// candidateKey identifies a candidate by value, not by reference.
func candidateKey(name string, price float64) string {
	return fmt.Sprintf("%s|%.2f", name, price)
}
