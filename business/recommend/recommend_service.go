package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"brewAdvisor/domain"
	"brewAdvisor/pkg/logger"
)

// ---- Repository interfaces ----

type BeverageCatalog interface {
	FindByFilter(ctx context.Context, mood string, maxPrice float64) ([]domain.Beverage, error)
	FindByMaxPrice(ctx context.Context, maxPrice float64) ([]domain.Beverage, error)
}

type PurchaseHistoryRepository interface {
	HistoryForUser(ctx context.Context, userID uint, limit, windowDays int) ([]domain.Purchase, error)
	WeeklySpending(ctx context.Context, userID uint) (domain.WeeklySpending, error)
}

// ---- Usecase / Service ----

// RecommendationService orchestrates the three models: constraint filtering,
// preference learning, and budget-aware scoring, combined into a diversified
// top-N. All per-request state lives on the stack; the service itself is
// safe for concurrent use.
type RecommendationService struct {
	catalog BeverageCatalog
	history PurchaseHistoryRepository
	cfg     Config
}

func NewRecommendationService(
	catalog BeverageCatalog,
	history PurchaseHistoryRepository,
	cfg Config,
) *RecommendationService {
	return &RecommendationService{
		catalog: catalog,
		history: history,
		cfg:     cfg,
	}
}

// Recommend returns the top-N scored candidates for a mood and budget
// ceiling, best first. Deterministic for identical external data; collaborator
// failures degrade to empty defaults rather than failing the request.
func (s *RecommendationService) Recommend(
	ctx context.Context,
	userID uint,
	mood string,
	budgetCeiling float64,
) ([]domain.ScoredCandidate, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	now := time.Now()
	tid := TraceIDFromContext(ctx)

	// The three feeds are independent; fetch them concurrently and degrade
	// each failure to its neutral default.
	var (
		wg        sync.WaitGroup
		purchases []domain.Purchase
		spending  domain.WeeklySpending
		catalog   []domain.Beverage
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		rows, err := s.history.HistoryForUser(ctx, userID, s.cfg.HistoryLimit, s.cfg.HistoryWindowDays)
		if err != nil {
			logger.Error("recommend: history fetch degraded", "trace_id", tid, "user_id", userID, "error", err)
			FetchDegradationsTotal.WithLabelValues("history").Inc()
			return
		}
		purchases = rows
	}()
	go func() {
		defer wg.Done()
		snap, err := s.history.WeeklySpending(ctx, userID)
		if err != nil {
			logger.Error("recommend: weekly spending fetch degraded", "trace_id", tid, "user_id", userID, "error", err)
			FetchDegradationsTotal.WithLabelValues("spending").Inc()
			return
		}
		spending = snap
	}()
	go func() {
		defer wg.Done()
		rows, err := s.catalog.FindByFilter(ctx, mood, budgetCeiling)
		if err != nil {
			logger.Error("recommend: catalog fetch degraded", "trace_id", tid, "error", err)
			FetchDegradationsTotal.WithLabelValues("catalog").Inc()
			return
		}
		catalog = rows
	}()
	wg.Wait()

	records := toHistoryRecords(purchases, now)
	excluded := s.recentExclusions(records)

	planner := NewBudgetPlanner(s.cfg)
	state, ratio := planner.BudgetStateFor(spending.SpentThisWeek, spending.WeeklyBudget)

	filter := NewConstraintFilter(s.cfg)
	pool := filter.Filter(catalog, mood, budgetCeiling, excluded, preferencesFrom(records))

	usedFallback := false
	if len(pool) == 0 {
		pool = s.fallbackCandidates(ctx, budgetCeiling)
		usedFallback = true
		FallbackActivationsTotal.Inc()
	}
	if len(pool) == 0 {
		// nothing under the ceiling is a valid, non-error outcome
		return []domain.ScoredCandidate{}, nil
	}

	logger.Debug("recommend: scoring pool",
		"trace_id", tid,
		"user_id", userID,
		"mood", mood,
		"budget_state", state.String(),
		"pool_size", len(pool),
		"fallback", usedFallback,
	)

	scored := s.scoreCandidates(pool, records, ratio, spending.WeeklyBudget, mood, now, excluded)

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Name < scored[j].Name
	})

	top := s.selectDiverse(scored, s.cfg.TopN)

	RecommendationsServedTotal.Inc()

	return top, nil
}

// scoreCandidates runs the preference and budget models per candidate and
// combines them with adaptive ensemble weights.
func (s *RecommendationService) scoreCandidates(
	pool []domain.Beverage,
	records []domain.HistoryRecord,
	ratio float64,
	weeklyBudget float64,
	mood string,
	now time.Time,
	excluded map[string]struct{},
) []domain.ScoredCandidate {

	predictor := NewPreferencePredictor(s.cfg)
	planner := NewBudgetPlanner(s.cfg)

	candidateNames := make([]string, 0, len(pool))
	allPrices := make([]float64, 0, len(pool))
	for _, b := range pool {
		candidateNames = append(candidateNames, b.Name)
		allPrices = append(allPrices, b.Price)
	}

	timeBucket := ComputeTimeBucket(now)

	// adaptive weights: the more history, the more the preference model counts
	confidence := math.Min(s.cfg.ConfidenceCap, s.cfg.BaseConfidence+s.cfg.ConfidencePerRecord*float64(len(records)))
	bayesWeight := s.cfg.BayesWeight * confidence
	mdpWeight := s.cfg.MDPWeight
	cspWeight := s.cfg.CSPWeight * (1 - confidence)
	weightSum := bayesWeight + mdpWeight + cspWeight
	bayesWeight /= weightSum
	mdpWeight /= weightSum
	cspWeight /= weightSum

	categoryCounts := make(map[string]int, len(pool))

	scored := make([]domain.ScoredCandidate, 0, len(pool))
	for i, b := range pool {
		otherPrices := make([]float64, 0, len(allPrices)-1)
		otherPrices = append(otherPrices, allPrices[:i]...)
		otherPrices = append(otherPrices, allPrices[i+1:]...)

		bayes := predictor.Score(b.Name, b.Price, b.Category, records, candidateNames, mood, timeBucket)
		mdp := planner.Score(b.Price, ratio, weeklyBudget, otherPrices)

		cspScore := 1.0
		if !inTopCategories(categoryCounts, b.Category, 3) {
			cspScore += 0.2
		}
		if _, recent := excluded[b.Name]; !recent {
			cspScore += 0.15
		}
		if cspScore > 1.0 {
			cspScore = 1.0
		}
		categoryCounts[b.Category]++

		// deterministic tie-break jitter derived from the name, not an RNG
		jitter := s.cfg.JitterScale * hashToUnit(b.Name)

		final := bayesWeight*bayes + mdpWeight*mdp + cspWeight*cspScore + jitter

		scored = append(scored, domain.ScoredCandidate{
			Name:          b.Name,
			Category:      b.Category,
			Price:         b.Price,
			BayesianScore: bayes,
			MDPScore:      mdp,
			CSPScore:      cspScore,
			Score:         final,
		})
	}

	return scored
}

// selectDiverse re-selects the top-N with Maximal Marginal Relevance: the
// best-scored item first, then whatever maximizes relevance minus similarity
// to what is already picked.
func (s *RecommendationService) selectDiverse(scored []domain.ScoredCandidate, n int) []domain.ScoredCandidate {
	if len(scored) <= 1 || n <= 1 {
		if len(scored) > n {
			return scored[:n]
		}
		return scored
	}

	picked := make([]domain.ScoredCandidate, 0, n)
	pickedKeys := make(map[string]struct{}, n)

	picked = append(picked, scored[0])
	pickedKeys[candidateKey(scored[0].Name, scored[0].Price)] = struct{}{}

	for len(picked) < n {
		bestIdx := -1
		bestMMR := math.Inf(-1)

		for i, c := range scored {
			if _, done := pickedKeys[candidateKey(c.Name, c.Price)]; done {
				continue
			}

			maxSim := 0.0
			for _, p := range picked {
				if sim := s.similarity(c, p); sim > maxSim {
					maxSim = sim
				}
			}

			mmr := s.cfg.MMRRelevanceWeight*c.Score - s.cfg.MMRSimilarityWeight*maxSim
			if mmr > bestMMR {
				bestMMR = mmr
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			break
		}
		picked = append(picked, scored[bestIdx])
		pickedKeys[candidateKey(scored[bestIdx].Name, scored[bestIdx].Price)] = struct{}{}
	}

	return picked
}

func (s *RecommendationService) similarity(a, b domain.ScoredCandidate) float64 {
	priceCloseness := math.Max(0, 1.0-math.Abs(a.Price-b.Price)/s.cfg.PriceNorm)

	sameCategory := 0.0
	if a.Category == b.Category {
		sameCategory = 1.0
	}

	return s.cfg.SimilarityPriceWeight*priceCloseness + s.cfg.SimilarityCategoryWeight*sameCategory
}

// fallbackCandidates bypasses the constraint filter and fabricates minimal
// candidates from a plain price-ceiling query. Diversity and value-ordering
// refinements are intentionally skipped here.
func (s *RecommendationService) fallbackCandidates(ctx context.Context, maxPrice float64) []domain.Beverage {
	rows, err := s.catalog.FindByMaxPrice(ctx, maxPrice)
	if err != nil {
		logger.Error("recommend: fallback catalog fetch failed", "error", err)
		return nil
	}

	out := make([]domain.Beverage, 0, len(rows))
	for _, b := range rows {
		category := b.Category
		if category == "" {
			category = s.cfg.FallbackCategory
		}
		out = append(out, domain.Beverage{
			Name:     b.Name,
			Category: category,
			Price:    b.Price,
		})
	}

	return out
}

// recentExclusions collects drinks bought inside the exclusion window.
func (s *RecommendationService) recentExclusions(records []domain.HistoryRecord) map[string]struct{} {
	excluded := make(map[string]struct{})
	for _, r := range records {
		if r.DaysAgo <= s.cfg.ExclusionWindowDays {
			excluded[r.BeverageName] = struct{}{}
		}
	}
	return excluded
}

func toHistoryRecords(purchases []domain.Purchase, now time.Time) []domain.HistoryRecord {
	records := make([]domain.HistoryRecord, 0, len(purchases))
	for _, p := range purchases {
		daysAgo := now.Sub(p.PurchaseDate).Hours() / 24
		if daysAgo < 0 {
			daysAgo = 0
		}
		records = append(records, domain.HistoryRecord{
			BeverageName: p.BeverageName,
			Category:     p.Category,
			Price:        p.Price,
			Mood:         p.Mood,
			TimeBucket:   ComputeTimeBucket(p.PurchaseDate),
			DaysAgo:      daysAgo,
		})
	}
	return records
}

// preferencesFrom summarizes history into the taste profile the constraint
// filter's value ordering consumes. Nil when there is no history.
func preferencesFrom(records []domain.HistoryRecord) *UserPreferences {
	if len(records) == 0 {
		return nil
	}

	share := make(map[string]float64)
	prices := make([]float64, 0, len(records))
	for _, r := range records {
		share[r.Category]++
		prices = append(prices, r.Price)
	}
	for cat := range share {
		share[cat] /= float64(len(records))
	}

	return &UserPreferences{
		CategoryShare: share,
		MedianPrice:   median(prices),
	}
}

// inTopCategories reports whether the category is among the k most frequent
// so far during the scoring pass.
func inTopCategories(counts map[string]int, category string, k int) bool {
	if counts[category] == 0 {
		return false
	}

	higher := 0
	for cat, c := range counts {
		if cat == category {
			continue
		}
		if c > counts[category] {
			higher++
		}
	}
	return higher < k
}
