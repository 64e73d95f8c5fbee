package recommend

import (
	"math"
	"sort"

	"brewAdvisor/domain"
)

// PreferencePredictor estimates P(user chooses this beverage | history,
// context) with a hierarchical Dirichlet-multinomial posterior, a
// product-of-experts likelihood, and a Beta-Bernoulli exploration term.
// Scores are continuous, in (0, 1], and never zero.
type PreferencePredictor struct {
	cfg Config
}

func NewPreferencePredictor(cfg Config) *PreferencePredictor {
	return &PreferencePredictor{cfg: cfg}
}

// Score computes the preference probability for one candidate against the
// full candidate set.
func (p *PreferencePredictor) Score(
	name string,
	price float64,
	category string,
	history []domain.HistoryRecord,
	candidateNames []string,
	mood string,
	timeBucket string,
) float64 {

	alphas := p.posteriorAlphas(history, candidateNames)

	var alphaSum float64
	for _, a := range alphas {
		alphaSum += a
	}

	posterior := 0.5
	if alphaSum > 0 {
		posterior = alphas[name] / alphaSum
	}

	likelihood := p.likelihood(name, price, category, history, candidateNames, mood, timeBucket)
	thompson := p.thompsonScore(name, history)
	width := p.credibleWidth(posterior, alphaSum)

	dataWeight := math.Min(p.cfg.DataWeightCap, float64(len(history))/p.cfg.DataWeightScale)

	uniform := 0.5
	if len(candidateNames) > 0 {
		uniform = 1.0 / float64(len(candidateNames))
	}

	score := dataWeight*(posterior*likelihood) +
		(1-dataWeight)/2*uniform +
		(1-dataWeight)/2*thompson

	if width > p.cfg.UncertaintyThreshold {
		score += p.cfg.UncertaintyBonus * width
	}

	return clamp(score, p.cfg.LikelihoodFloor, 1.0)
}

// PosteriorDistribution exposes the normalized Dirichlet-multinomial
// posterior over the candidate set. Probabilities sum to one.
func (p *PreferencePredictor) PosteriorDistribution(history []domain.HistoryRecord, candidateNames []string) map[string]float64 {
	alphas := p.posteriorAlphas(history, candidateNames)

	var alphaSum float64
	for _, a := range alphas {
		alphaSum += a
	}

	dist := make(map[string]float64, len(alphas))
	for name, a := range alphas {
		if alphaSum > 0 {
			dist[name] = a / alphaSum
		}
	}
	return dist
}

// Consistency measures how repetitive a user's purchases are: 1 means they
// always buy the same drink, 0 means every purchase is new. Neutral 0.5 with
// fewer than two records.
func (p *PreferencePredictor) Consistency(history []domain.HistoryRecord) float64 {
	if len(history) < 2 {
		return 0.5
	}

	unique := make(map[string]struct{}, len(history))
	for _, h := range history {
		unique[h.BeverageName] = struct{}{}
	}

	return 1.0 - float64(len(unique))/float64(len(history))
}

// decayRate adapts the recency decay to the user: consistent users keep old
// evidence around, exploratory users forget it fast.
func (p *PreferencePredictor) decayRate(history []domain.HistoryRecord) float64 {
	consistency := p.Consistency(history)
	return p.cfg.DecayRateConsistent +
		(p.cfg.DecayRateExploratory-p.cfg.DecayRateConsistent)*(1.0-consistency)
}

// posteriorAlphas builds the hierarchical prior and adds recency-weighted
// evidence for each candidate drink.
func (p *PreferencePredictor) posteriorAlphas(history []domain.HistoryRecord, candidateNames []string) map[string]float64 {
	rate := p.decayRate(history)

	counts := make(map[string]float64, len(history))
	weighted := make(map[string]float64, len(history))
	for _, h := range history {
		counts[h.BeverageName]++
		weighted[h.BeverageName] += math.Exp(-rate * math.Max(0, h.DaysAgo))
	}

	observations := float64(len(history))
	userWeight := 0.0
	if observations > 0 {
		userWeight = math.Min(p.cfg.UserPriorBlendCap, observations/p.cfg.UserPriorBlendScale)
	}

	alphas := make(map[string]float64, len(candidateNames))
	for _, name := range candidateNames {
		prior := (1-userWeight)*p.cfg.AlphaPrior + userWeight*counts[name]
		if prior < p.cfg.PriorFloor {
			prior = p.cfg.PriorFloor
		}
		alphas[name] = prior + weighted[name]
	}

	return alphas
}

// likelihood is a weighted geometric mean over the mood, price, category, and
// time-of-day experts, renormalized over whichever components are available.
func (p *PreferencePredictor) likelihood(
	name string,
	price float64,
	category string,
	history []domain.HistoryRecord,
	candidateNames []string,
	mood string,
	timeBucket string,
) float64 {

	if len(history) == 0 {
		return 0.5
	}

	type expert struct {
		weight float64
		value  float64
	}

	experts := []expert{
		{p.cfg.MoodWeight, p.moodTerm(history, mood)},
		{p.cfg.PriceWeight, p.priceTerm(history, price)},
		{p.cfg.CategoryWeight, p.categoryTerm(history, category)},
	}

	if timeBucket != "" {
		experts = append(experts, expert{p.cfg.ContextWeight, p.contextTerm(history, name, timeBucket, len(candidateNames))})
	}

	var logSum, weightSum float64
	for _, e := range experts {
		v := math.Max(e.value, p.cfg.LikelihoodFloor)
		logSum += e.weight * math.Log(v)
		weightSum += e.weight
	}
	if weightSum == 0 {
		return 0.5
	}

	return math.Exp(logSum / weightSum)
}

func (p *PreferencePredictor) moodTerm(history []domain.HistoryRecord, mood string) float64 {
	if mood == "" {
		return 0.5
	}

	count := 0
	for _, h := range history {
		if h.Mood == mood {
			count++
		}
	}

	return float64(count+1) / float64(len(history)+len(knownMoods))
}

// priceTerm is a Gaussian kernel around the historical median price with a
// robust MAD scale. A degenerate MAD falls back to a wide or narrow kernel
// depending on whether the candidate sits on the median.
func (p *PreferencePredictor) priceTerm(history []domain.HistoryRecord, price float64) float64 {
	prices := make([]float64, 0, len(history))
	for _, h := range history {
		prices = append(prices, h.Price)
	}

	med := median(prices)

	deviations := make([]float64, 0, len(prices))
	for _, v := range prices {
		deviations = append(deviations, math.Abs(v-med))
	}
	mad := median(deviations)

	scale := 1.4826 * mad
	if scale == 0 {
		if math.Abs(price-med) <= 1.0 {
			return 1.0
		}
		return 0.3
	}

	z := (price - med) / scale
	return math.Exp(-0.5 * z * z)
}

func (p *PreferencePredictor) categoryTerm(history []domain.HistoryRecord, category string) float64 {
	categories := make(map[string]struct{}, len(history))
	count := 0
	for _, h := range history {
		categories[h.Category] = struct{}{}
		if h.Category == category {
			count++
		}
	}

	return float64(count+1) / float64(len(history)+len(categories)+1)
}

// contextTerm is the Laplace-smoothed frequency of this exact drink at the
// given time of day.
func (p *PreferencePredictor) contextTerm(history []domain.HistoryRecord, name, timeBucket string, numCandidates int) float64 {
	atBucket := 0
	matching := 0
	for _, h := range history {
		if h.TimeBucket == timeBucket {
			atBucket++
			if h.BeverageName == name {
				matching++
			}
		}
	}

	denom := atBucket + max(numCandidates, 1)
	return float64(matching+1) / float64(denom)
}

// thompsonScore is the Beta-Bernoulli preference belief: posterior mean plus
// a small uncertainty bonus instead of a random draw, keeping scoring
// deterministic.
func (p *PreferencePredictor) thompsonScore(name string, history []domain.HistoryRecord) float64 {
	count := 0.0
	for _, h := range history {
		if h.BeverageName == name {
			count++
		}
	}

	alpha := 2.0 + count
	beta := 2.0

	mean := alpha / (alpha + beta)
	variance := (alpha * beta) / ((alpha + beta) * (alpha + beta) * (alpha + beta + 1))

	return mean + p.cfg.ThompsonBonus*math.Sqrt(variance)
}

// credibleWidth approximates the 95% credible interval width of the
// posterior probability with a normal approximation.
func (p *PreferencePredictor) credibleWidth(mean, alphaSum float64) float64 {
	if alphaSum <= 0 {
		return 0
	}
	variance := mean * (1 - mean) / (alphaSum + 1)
	return 2 * p.cfg.CredibleZ * math.Sqrt(variance)
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
