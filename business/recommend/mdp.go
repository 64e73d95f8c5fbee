package recommend

import "math"

// BudgetState is the discretized weekly-budget consumption level. Boundaries
// are closed on the higher-consumption side: a ratio of exactly 0.35 is
// MEDIUM, 0.65 is LOW, 0.85 is CRITICAL.
type BudgetState int

const (
	BudgetHigh BudgetState = iota
	BudgetMedium
	BudgetLow
	BudgetCritical
)

const (
	mediumBoundary   = 0.35
	lowBoundary      = 0.65
	criticalBoundary = 0.85
)

func (s BudgetState) String() string {
	switch s {
	case BudgetHigh:
		return "HIGH"
	case BudgetMedium:
		return "MEDIUM"
	case BudgetLow:
		return "LOW"
	default:
		return "CRITICAL"
	}
}

// StateForRatio maps a consumption ratio to its discrete bucket.
func StateForRatio(ratio float64) BudgetState {
	switch {
	case ratio < mediumBoundary:
		return BudgetHigh
	case ratio < lowBoundary:
		return BudgetMedium
	case ratio < criticalBoundary:
		return BudgetLow
	default:
		return BudgetCritical
	}
}

// baseStateValue is the fixed value of landing in each discrete state.
func baseStateValue(s BudgetState) float64 {
	switch s {
	case BudgetHigh:
		return 0.90
	case BudgetMedium:
		return 0.75
	case BudgetLow:
		return 0.55
	default:
		return 0.30
	}
}

// BudgetPlanner scores a candidate purchase by its expected long-run utility
// given the user's budget-consumption state.
type BudgetPlanner struct {
	cfg Config
}

func NewBudgetPlanner(cfg Config) *BudgetPlanner {
	return &BudgetPlanner{cfg: cfg}
}

// BudgetStateFor computes the clamped consumption ratio and its bucket. A
// non-positive budget resolves to the neutral 0.5 ratio.
func (p *BudgetPlanner) BudgetStateFor(spent, weeklyBudget float64) (BudgetState, float64) {
	ratio := 0.5
	if weeklyBudget > 0 {
		ratio = clamp(spent/weeklyBudget, 0, 1)
	}
	return StateForRatio(ratio), ratio
}

// Utility is the single-step reward for buying a drink of the given price at
// the given consumption ratio: CRRA satisfaction, a prospect-theory budget
// term referenced at 50% consumption, a value bonus against the candidate
// pool's average price, and a small quality bonus, squashed to [0, 1].
func (p *BudgetPlanner) Utility(price, ratio, avgPrice float64) float64 {
	rho := 0.5 + 1.5*p.cfg.RiskAversion

	var satisfaction float64
	if math.Abs(rho-1) < 1e-9 {
		satisfaction = math.Log(price + 1)
	} else {
		satisfaction = math.Pow(price+1, 1-rho) / (1 - rho)
	}

	ref := p.cfg.ReferenceRatio
	var budgetTerm float64
	if ratio > ref {
		// losses above the reference point loom larger than gains below it
		budgetTerm = -p.cfg.LossAversion * (ratio - ref) * (ratio - ref)
	} else {
		budgetTerm = p.cfg.GainCurvature * (ref - ratio) * (ref - ratio)
	}
	if ratio > 1 {
		budgetTerm -= p.cfg.OverrunPenalty * (ratio - 1)
	}

	if avgPrice <= 0 {
		avgPrice = price
	}
	valueBonus := math.Log(avgPrice/(price+0.1)+1) * p.cfg.ValueBonusWeight

	qualityBonus := math.Min(p.cfg.QualityBonusCap, price*0.02)

	raw := p.cfg.SatisfactionWeight*satisfaction + budgetTerm + valueBonus + qualityBonus

	return 1.0 / (1.0 + math.Exp(-raw))
}

type stateProb struct {
	state BudgetState
	prob  float64
}

// transition models buying a drink as a distribution over next discrete
// states: 90% on the bucket the new ratio implies, 10% leaked to adjacent
// buckets for behavioral noise.
func (p *BudgetPlanner) transition(ratio, price, weeklyBudget float64) (float64, []stateProb) {
	if weeklyBudget <= 0 {
		next := StateForRatio(ratio)
		return ratio, []stateProb{{next, 1.0}}
	}

	newRatio := math.Min(1.0, (ratio*weeklyBudget+price)/weeklyBudget)
	center := StateForRatio(newRatio)

	var neighbors []BudgetState
	if center > BudgetHigh {
		neighbors = append(neighbors, center-1)
	}
	if center < BudgetCritical {
		neighbors = append(neighbors, center+1)
	}

	dist := []stateProb{{center, 0.90}}
	if len(neighbors) > 0 {
		leak := 0.10 / float64(len(neighbors))
		for _, n := range neighbors {
			dist = append(dist, stateProb{n, leak})
		}
	} else {
		dist[0].prob = 1.0
	}

	return newRatio, dist
}

// stateValue adjusts the fixed per-state value with a flexibility bonus for
// remaining budget and an option-value bonus for how many of the other
// candidates stay affordable after the purchase.
func (p *BudgetPlanner) stateValue(s BudgetState, ratioAfter, weeklyBudget float64, otherPrices []float64) float64 {
	value := baseStateValue(s)

	value += 0.1 * (1.0 - ratioAfter)

	if len(otherPrices) > 0 && weeklyBudget > 0 {
		remaining := (1.0 - ratioAfter) * weeklyBudget
		affordable := 0
		for _, op := range otherPrices {
			if op <= remaining {
				affordable++
			}
		}
		value += 0.1 * float64(affordable) / float64(len(otherPrices))
	}

	return value
}

// QLearningScore is the default scoring path: immediate reward plus a
// discounted multi-step lookahead over the transition distribution, where
// later steps assume a typical follow-up purchase.
func (p *BudgetPlanner) QLearningScore(price, ratio, weeklyBudget float64, otherPrices []float64) float64 {
	avg := mean(otherPrices, price)

	total := p.Utility(price, ratio, avg)

	current := ratio
	spend := price
	for step := 1; step <= p.cfg.LookaheadSteps; step++ {
		next, dist := p.transition(current, spend, weeklyBudget)

		expected := 0.0
		for _, sp := range dist {
			expected += sp.prob * p.stateValue(sp.state, next, weeklyBudget, otherPrices)
		}

		total += math.Pow(p.cfg.Gamma, float64(step)) * expected

		current = next
		spend = avg
	}

	return total
}

// ValueIterationScore solves the Bellman-optimality fixed point over a
// discretized ratio grid, then scores the candidate as immediate utility plus
// the discounted expected value of the landing bucket.
func (p *BudgetPlanner) ValueIterationScore(price, ratio, weeklyBudget float64, prices []float64) float64 {
	avg := mean(prices, price)
	grid := p.cfg.ValueIterGrid
	values := make([]float64, grid)

	actions := prices
	if len(actions) == 0 {
		actions = []float64{price}
	}

	gridRatio := func(i int) float64 {
		return (float64(i) + 0.5) / float64(grid)
	}
	gridIndex := func(r float64) int {
		idx := int(r * float64(grid))
		if idx >= grid {
			idx = grid - 1
		}
		return idx
	}

	for iter := 0; iter < p.cfg.ValueIterMax; iter++ {
		maxChange := 0.0
		for i := 0; i < grid; i++ {
			r := gridRatio(i)

			best := math.Inf(-1)
			for _, a := range actions {
				dist, _ := p.transitionOnGrid(r, a, weeklyBudget, grid, gridIndex)
				q := p.Utility(a, r, avg)
				for _, gp := range dist {
					q += p.cfg.Gamma * gp.prob * values[gp.index]
				}
				if q > best {
					best = q
				}
			}

			change := math.Abs(best - values[i])
			if change > maxChange {
				maxChange = change
			}
			values[i] = best
		}

		if maxChange < p.cfg.ValueIterTol {
			break
		}
	}

	newRatio, _ := p.transition(ratio, price, weeklyBudget)
	return p.Utility(price, ratio, avg) + p.cfg.Gamma*values[gridIndex(newRatio)]
}

type gridProb struct {
	index int
	prob  float64
}

// transitionOnGrid mirrors transition for the fine-grained iteration grids:
// 90% on the implied bucket, 10% leaked to its grid neighbors.
func (p *BudgetPlanner) transitionOnGrid(ratio, price, weeklyBudget float64, grid int, gridIndex func(float64) int) ([]gridProb, float64) {
	newRatio := ratio
	if weeklyBudget > 0 {
		newRatio = math.Min(1.0, (ratio*weeklyBudget+price)/weeklyBudget)
	}

	center := gridIndex(newRatio)

	var neighbors []int
	if center > 0 {
		neighbors = append(neighbors, center-1)
	}
	if center < grid-1 {
		neighbors = append(neighbors, center+1)
	}

	dist := []gridProb{{center, 0.90}}
	if len(neighbors) > 0 {
		leak := 0.10 / float64(len(neighbors))
		for _, n := range neighbors {
			dist = append(dist, gridProb{n, leak})
		}
	} else {
		dist[0].prob = 1.0
	}

	return dist, newRatio
}

// PolicyIterationScore alternates policy evaluation and greedy improvement
// over a coarser grid, then blends the converged state value with the
// immediate utility of the specific candidate. Falls back to Q-learning when
// the action space is too large for the inner sweeps to be worth it.
func (p *BudgetPlanner) PolicyIterationScore(price, ratio, weeklyBudget float64, prices []float64) float64 {
	if len(prices) >= p.cfg.PolicyActionCap {
		return p.QLearningScore(price, ratio, weeklyBudget, prices)
	}

	avg := mean(prices, price)
	grid := p.cfg.PolicyIterGrid

	actions := prices
	if len(actions) == 0 {
		actions = []float64{price}
	}

	gridRatio := func(i int) float64 {
		return (float64(i) + 0.5) / float64(grid)
	}
	gridIndex := func(r float64) int {
		idx := int(r * float64(grid))
		if idx >= grid {
			idx = grid - 1
		}
		return idx
	}

	values := make([]float64, grid)
	policy := make([]int, grid)

	for iter := 0; iter < p.cfg.PolicyIterMax; iter++ {
		// policy evaluation
		for sweep := 0; sweep < p.cfg.PolicyEvalSweeps; sweep++ {
			for i := 0; i < grid; i++ {
				r := gridRatio(i)
				a := actions[policy[i]]
				dist, _ := p.transitionOnGrid(r, a, weeklyBudget, grid, gridIndex)
				v := p.Utility(a, r, avg)
				for _, gp := range dist {
					v += p.cfg.Gamma * gp.prob * values[gp.index]
				}
				values[i] = v
			}
		}

		// greedy improvement
		stable := true
		for i := 0; i < grid; i++ {
			r := gridRatio(i)

			bestAction := policy[i]
			bestValue := math.Inf(-1)
			for ai, a := range actions {
				dist, _ := p.transitionOnGrid(r, a, weeklyBudget, grid, gridIndex)
				q := p.Utility(a, r, avg)
				for _, gp := range dist {
					q += p.cfg.Gamma * gp.prob * values[gp.index]
				}
				if q > bestValue {
					bestValue = q
					bestAction = ai
				}
			}

			if bestAction != policy[i] {
				policy[i] = bestAction
				stable = false
			}
		}

		if stable {
			break
		}
	}

	stateVal := values[gridIndex(ratio)]
	return 0.6*stateVal + 0.4*p.Utility(price, ratio, avg)
}

// Score is the planner's default entry point (Q-learning, cheap).
func (p *BudgetPlanner) Score(price, ratio, weeklyBudget float64, otherPrices []float64) float64 {
	return p.QLearningScore(price, ratio, weeklyBudget, otherPrices)
}

// UCB1 is the exploration bonus for a candidate selected armPlays times out
// of totalPlays. Unselected candidates get an infinite bonus. Kept for an
// exploration-aware ensemble; the default scoring path does not use it.
func (p *BudgetPlanner) UCB1(totalPlays, armPlays int) float64 {
	if armPlays <= 0 {
		return math.Inf(1)
	}
	if totalPlays <= 0 {
		return 0
	}
	return p.cfg.UCBExploration * math.Sqrt(math.Log(float64(totalPlays))/float64(armPlays))
}

func mean(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
